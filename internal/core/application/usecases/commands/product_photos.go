package commands

import (
	"context"
	"fmt"

	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/ports"
)

// storeProducts saves one photo per product and builds the products with the stored
// URLs. The returned URLs must be discarded by the caller if the shipment is not
// persisted; on error, photos saved so far are already discarded.
func storeProducts(
	ctx context.Context,
	storage ports.PhotoStorage,
	params []shipment.ProductParams,
	photos []ports.File,
) ([]shipment.Product, []string, error) {
	urls := make([]string, 0, len(photos))
	products := make([]shipment.Product, 0, len(params))

	for i, p := range params {
		url, err := storage.Save(ctx, photos[i])
		if err != nil {
			discardPhotos(ctx, storage, urls)
			return nil, nil, fmt.Errorf("save photo of product %d: %w", i, err)
		}
		urls = append(urls, url)

		p.Photo = url
		product, err := shipment.NewProduct(p)
		if err != nil {
			discardPhotos(ctx, storage, urls)
			return nil, nil, err
		}
		products = append(products, product)
	}

	return products, urls, nil
}

// discardPhotos removes stored photos on a best-effort basis.
func discardPhotos(ctx context.Context, storage ports.PhotoStorage, urls []string) {
	for _, url := range urls {
		_ = storage.Delete(ctx, url)
	}
}

func productPhotos(products []shipment.Product) []string {
	urls := make([]string, 0, len(products))
	for _, p := range products {
		urls = append(urls, p.Photo())
	}
	return urls
}
