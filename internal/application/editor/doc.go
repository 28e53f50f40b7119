// Package editor es el núcleo del cliente de inventario: mantiene la última instantánea
// recibida del servicio, valida la unicidad (SKU, tienda) antes de enviar cambios, gestiona
// la sesión de edición en línea y orquesta altas, ediciones, bajas e importaciones CSV.
//
// El servicio remoto es la fuente de verdad. Tras cada escritura confirmada la instantánea se
// vuelve a pedir completa; nunca se fusionan campos sueltos en local.
package editor
