package product

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ThanathornKKU/catalog-service/internal/domain"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/logx"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/mw"
	v1 "github.com/ThanathornKKU/catalog-service/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete a product
// @Tags        products
// @Produce     json
// @Param       id path string true "product id"
// @Success     200 {object} domain.APIEnvelope{response=object}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/products/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "products.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad product id", err, "id_raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrInvalidInput)
		return
	}

	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "product_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "product_id", id)
	v1.WriteOKResponse(w, r, map[string]bool{id.String(): true})
}
