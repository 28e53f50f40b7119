package editor

import (
	"errors"
	"fmt"
)

const (
	msgTransport    = "No se pudo contactar con el servicio. Inténtalo de nuevo."
	msgCreateFailed = "No se pudo agregar el artículo: %s"
	msgImportFailed = "Error al subir el archivo"
	msgImportOK     = "Se importaron %d artículos"
)

// UserMessage traduce un error del núcleo al texto que ve el usuario.
// Los rechazos del servicio se muestran literalmente; los fallos de transporte con un texto genérico.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Error()
	}
	var rr *RemoteRejection
	if errors.As(err, &rr) {
		return rr.Message
	}
	var tf *TransportFailure
	if errors.As(err, &tf) {
		return msgTransport
	}
	return err.Error()
}

// CreateFailedMessage mensaje para un alta fallida.
func CreateFailedMessage(err error) string {
	if IsValidation(err) {
		return UserMessage(err)
	}
	return fmt.Sprintf(msgCreateFailed, UserMessage(err))
}

// ImportMessage mensaje final de una importación: el conteo del servicio sin recontar, o el fallo genérico.
func ImportMessage(res ImportResult, err error) string {
	if err != nil {
		return msgImportFailed
	}
	return fmt.Sprintf(msgImportOK, res.Count)
}
