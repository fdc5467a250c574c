package product

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ThanathornKKU/catalog-service/internal/domain"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/logx"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/mw"
	v1 "github.com/ThanathornKKU/catalog-service/internal/transport/web/v1"
)

// GetOne godoc
// @Summary     Get a single product
// @Tags        products
// @Produce     json
// @Param       id path string true "product id"
// @Success     200 {object} domain.APIEnvelope{data=domain.Product}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/products/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "products.get_one"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad product id", err, "id_raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrInvalidInput)
		return
	}

	p, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "get failed", err, "product_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "product_id", p.ID)
	v1.WriteOKData(w, r, p)
}
