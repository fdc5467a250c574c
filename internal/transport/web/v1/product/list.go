package product

import (
	"net/http"

	"github.com/ThanathornKKU/catalog-service/internal/transport/web/logx"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/mw"
	v1 "github.com/ThanathornKKU/catalog-service/internal/transport/web/v1"
)

// List godoc
// @Summary     List products
// @Tags        products
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Product}
// @Failure     503 {object} domain.APIEnvelope
// @Router      /v1/products [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "products.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	products, err := h.Catalog.List(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(products))
	v1.WriteOKData(w, r, products)
}
