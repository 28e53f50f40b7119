package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-tiendas/internal/application/csvimport"
	"github.com/jhoicas/Inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

// ImportHandler recibe archivos CSV por multipart (campo "file").
type ImportHandler struct {
	uc       *csvimport.ImportCSVUseCase
	maxBytes int64
	log      *logger.Logger
}

// NewImportHandler construye el handler. maxBytes limita el tamaño del archivo.
func NewImportHandler(uc *csvimport.ImportCSVUseCase, maxBytes int64, log *logger.Logger) *ImportHandler {
	return &ImportHandler{uc: uc, maxBytes: maxBytes, log: log}
}

// UploadCSV godoc
// @Summary      Importar inventario desde CSV
// @Description  Cabecera obligatoria: quantity, sku, store (description opcional). charset=latin1 para ISO-8859-1.
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "Archivo CSV"
// @Param        charset  formData  string  false  "utf-8 (defecto) o latin1"
// @Success      200  {object}  dto.ImportCSVResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /upload-csv [post]
func (h *ImportHandler) UploadCSV(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "no se recibió ningún archivo"})
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "archivo demasiado grande"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	out, err := h.uc.Import(c.UserContext(), f, c.FormValue("charset"))
	if err != nil {
		h.log.Warn().Err(err).Str("file", fh.Filename).Str("request_id", GetRequestID(c)).Msg("importación CSV rechazada")
		return writeError(c, err)
	}
	h.log.Info().
		Str("file", fh.Filename).
		Int("count", out.Count).
		Int("skipped", out.Skipped).
		Str("request_id", GetRequestID(c)).
		Msg("importación CSV completada")
	return c.JSON(out)
}
