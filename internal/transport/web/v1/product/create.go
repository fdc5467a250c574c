package product

import (
	"encoding/json"
	"net/http"

	"github.com/ThanathornKKU/catalog-service/internal/domain"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/logx"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/mw"
	v1 "github.com/ThanathornKKU/catalog-service/internal/transport/web/v1"
)

// Create godoc
// @Summary     Create a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       input body domain.CreateProductInput true "product fields"
// @Success     201 {object} domain.APIEnvelope{data=domain.Product}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     409 {object} domain.APIEnvelope
// @Router      /v1/products [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "products.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	var in domain.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, domain.ErrInvalidInput)
		return
	}

	created, err := h.Catalog.Create(r.Context(), in)
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err, "name", in.Name)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "product_id", created.ID, "name", created.Name)
	v1.WriteCreatedData(w, r, created)
}
