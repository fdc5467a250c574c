package product

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/ThanathornKKU/catalog-service/internal/domain"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/logx"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/mw"
	v1 "github.com/ThanathornKKU/catalog-service/internal/transport/web/v1"
)

// Update godoc
// @Summary     Update a product (partial)
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id    path string                    true "product id"
// @Param       input body domain.UpdateProductInput true "fields to change"
// @Success     200 {object} domain.APIEnvelope{data=domain.Product}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     409 {object} domain.APIEnvelope
// @Router      /v1/products/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "products.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad product id", err, "id_raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrInvalidInput)
		return
	}

	var in domain.UpdateProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, domain.ErrInvalidInput)
		return
	}

	updated, err := h.Catalog.Update(r.Context(), id, in)
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "product_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "product_id", updated.ID)
	v1.WriteOKData(w, r, updated)
}
