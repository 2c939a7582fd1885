package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/floran-storefront/internal/backend"
	"github.com/mmeshcher/floran-storefront/internal/bouquet"
	"github.com/mmeshcher/floran-storefront/internal/localstore"
	"github.com/mmeshcher/floran-storefront/internal/model"
	"github.com/mmeshcher/floran-storefront/internal/validation"
)

// BouquetView отражает собираемый букет и его цену.
type BouquetView struct {
	Design      bouquet.Design  `json:"design"`
	Total       decimal.Decimal `json:"total"`
	FlowerCount int             `json:"flower_count"`
}

// BouquetOptions задаёт оформление букета. Пустое поле оставляет значение без изменений.
type BouquetOptions struct {
	Style    bouquet.Style `json:"style,omitempty"`
	Size     bouquet.Size  `json:"size,omitempty"`
	Wrapping string        `json:"wrapping,omitempty"`
}

func bouquetView(d bouquet.Design) *BouquetView {
	d.Flowers = append([]bouquet.Flower{}, d.Flowers...)
	return &BouquetView{Design: d, Total: d.Total(), FlowerCount: d.FlowerCount()}
}

// bouquetError переводит ошибки конструктора в ошибки проверки формы.
func bouquetError(err error) error {
	switch {
	case errors.Is(err, bouquet.ErrUnknownStyle):
		return &validation.Error{Field: "style", Message: "Unknown arrangement style"}
	case errors.Is(err, bouquet.ErrUnknownSize):
		return &validation.Error{Field: "size", Message: "Unknown bouquet size"}
	case errors.Is(err, bouquet.ErrUnknownWrapping):
		return &validation.Error{Field: "wrapping", Message: "Unknown wrapping"}
	case errors.Is(err, bouquet.ErrEmptyDesign):
		return &validation.Error{Field: "flowers", Message: "Add at least one flower to your bouquet"}
	case errors.Is(err, bouquet.ErrInvalidShareCode):
		return &validation.Error{Field: "code", Message: "This bouquet link is not valid"}
	default:
		return err
	}
}

func (s *Service) saveBouquet(ctx context.Context, sess *Session) {
	if err := sess.bucket.Save(ctx, localstore.KeyBouquet, sess.bouquet); err != nil {
		s.logger.Warn("save bouquet error", zap.Error(err), zap.String("session", sess.id))
	}
}

// BouquetOptions возвращает доступные формы, размеры и упаковки.
func (s *Service) BouquetOptions() bouquet.Options {
	return bouquet.AvailableOptions()
}

// Bouquet возвращает собираемый букет.
func (s *Service) Bouquet(ctx context.Context, sid string) *BouquetView {
	sess, _ := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	return bouquetView(sess.bouquet)
}

// AddBouquetFlower добавляет в букет один цветок по текущей цене каталога.
func (s *Service) AddBouquetFlower(ctx context.Context, sid string, productID int64) (*BouquetView, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	product, err := s.backend.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, ErrOutOfStock
	}

	sess.bouquet.AddFlower(*product)
	s.saveBouquet(ctx, sess)
	return bouquetView(sess.bouquet), nil
}

// UpdateBouquetFlower меняет количество цветка на delta; ноль и меньше убирает цветок.
func (s *Service) UpdateBouquetFlower(ctx context.Context, sid string, productID int64, delta int) *BouquetView {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	sess.bouquet.UpdateCount(productID, delta)
	s.saveBouquet(ctx, sess)
	return bouquetView(sess.bouquet)
}

// RemoveBouquetFlower убирает цветок из букета.
func (s *Service) RemoveBouquetFlower(ctx context.Context, sid string, productID int64) *BouquetView {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	sess.bouquet.RemoveFlower(productID)
	s.saveBouquet(ctx, sess)
	return bouquetView(sess.bouquet)
}

// ConfigureBouquet меняет форму, размер и упаковку. При ошибке букет не меняется.
func (s *Service) ConfigureBouquet(ctx context.Context, sid string, opts BouquetOptions) (*BouquetView, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	d := sess.bouquet
	if opts.Style != "" {
		if err := d.SetStyle(opts.Style); err != nil {
			return nil, bouquetError(err)
		}
	}
	if opts.Size != "" {
		if err := d.SetSize(opts.Size); err != nil {
			return nil, bouquetError(err)
		}
	}
	if opts.Wrapping != "" {
		if err := d.SetWrapping(opts.Wrapping); err != nil {
			return nil, bouquetError(err)
		}
	}

	sess.bouquet = d
	s.saveBouquet(ctx, sess)
	return bouquetView(sess.bouquet), nil
}

// ClearBouquet начинает букет заново.
func (s *Service) ClearBouquet(ctx context.Context, sid string) *BouquetView {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	sess.bouquet = bouquet.NewDesign()
	s.saveBouquet(ctx, sess)
	return bouquetView(sess.bouquet)
}

// ShareBouquet возвращает код букета для ссылки.
func (s *Service) ShareBouquet(ctx context.Context, sid string) (string, error) {
	sess, _ := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	return sess.bouquet.Encode()
}

// LoadBouquet заменяет букет присланным по ссылке. Цены цветов берутся из каталога,
// отсутствующие и закончившиеся цветы отбрасываются.
func (s *Service) LoadBouquet(ctx context.Context, sid, code string) (*BouquetView, error) {
	d, err := bouquet.Decode(code)
	if err != nil {
		return nil, bouquetError(err)
	}

	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	flowers := make([]bouquet.Flower, 0, len(d.Flowers))
	for _, f := range d.Flowers {
		product, err := s.backend.GetProduct(ctx, f.ProductID)
		if err != nil {
			if _, ok := backend.IsRejected(err); ok {
				continue
			}
			return nil, err
		}
		if !product.InStock {
			continue
		}
		f.Name, f.Image, f.Price = product.Name, product.Image, product.Price
		flowers = append(flowers, f)
	}
	d.Flowers = flowers

	sess.bouquet = d
	s.saveBouquet(ctx, sess)
	return bouquetView(sess.bouquet), nil
}

// AddBouquetToCart кладёт букет в корзину как отдельный товар и начинает новый букет.
func (s *Service) AddBouquetToCart(ctx context.Context, sid string) (*View, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	product, err := sess.bouquet.CartProduct(s.now().UnixMilli())
	if err != nil {
		return nil, bouquetError(err)
	}
	if err := sess.cart.Add(ctx, product, 1); err != nil {
		return nil, err
	}

	sess.bouquet = bouquet.NewDesign()
	s.saveBouquet(ctx, sess)
	sess.toaster.Show(product.Name+" added to cart", model.ToastSuccess)
	return sess.view(), nil
}
