package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/floran-storefront/internal/backend"
	"github.com/mmeshcher/floran-storefront/internal/bouquet"
	"github.com/mmeshcher/floran-storefront/internal/cart"
	"github.com/mmeshcher/floran-storefront/internal/flash"
	"github.com/mmeshcher/floran-storefront/internal/localstore"
	"github.com/mmeshcher/floran-storefront/internal/model"
	"github.com/mmeshcher/floran-storefront/internal/wishlist"
)

// Selection хранит выбор покупателя на странице оформления: промокод и списываемые баллы.
type Selection struct {
	PromoCode string `json:"promo_code"`
	Points    int64  `json:"points"`
	Email     string `json:"email,omitempty"`
}

// Session хранит состояние одной браузерной сессии. Все операции над сессией
// выполняются под её мьютексом в порядке поступления.
type Session struct {
	id       string
	mu       sync.Mutex
	hydrated bool
	lastSeen time.Time

	bucket   *localstore.Bucket
	cart     *cart.Store
	wishlist *wishlist.List
	toaster  *flash.Toaster
	pulse    *flash.Pulse

	token     string
	user      *model.User
	selection Selection
	bouquet   bouquet.Design
}

// CartView отражает состояние корзины для интерфейса.
type CartView struct {
	Lines []model.CartLine `json:"lines"`
	Count int              `json:"count"`
	Total decimal.Decimal  `json:"total"`
	Pulse bool             `json:"pulse"`
}

// View содержит снимок сессии для интерфейса.
type View struct {
	Authenticated bool         `json:"authenticated"`
	User          *model.User  `json:"user"`
	Cart          CartView     `json:"cart"`
	WishlistCount int          `json:"wishlist_count"`
	Selection     Selection    `json:"selection"`
	Toast         *model.Toast `json:"toast"`
}

func (s *Service) newSession(id string) *Session {
	bucket := localstore.NewBucket(s.storage, id)
	pulse := flash.NewPulse(flash.DefaultPulseDuration)

	return &Session{
		id:      id,
		bucket:  bucket,
		pulse:   pulse,
		toaster: flash.NewToaster(flash.DefaultToastTTL),
		cart:    cart.NewStore(s.backend, bucket, pulse, s.logger.With(zap.String("session", id))),
	}
}

// acquire возвращает заблокированную сессию и контекст с токеном её пользователя.
// Вызывающий обязан вызвать sess.mu.Unlock.
func (s *Service) acquire(ctx context.Context, sid string) (*Session, context.Context) {
	s.mu.Lock()
	sess, ok := s.sessions[sid]
	if !ok {
		sess = s.newSession(sid)
		s.sessions[sid] = sess
	}
	sess.lastSeen = s.now()
	s.mu.Unlock()

	sess.mu.Lock()
	if !sess.hydrated {
		s.hydrate(ctx, sess)
	}
	return sess, backend.WithToken(ctx, sess.token)
}

// hydrate восстанавливает сессию из локального хранилища: пользователя, токен,
// корзину и избранное.
func (s *Service) hydrate(ctx context.Context, sess *Session) {
	logger := s.logger.With(zap.String("session", sess.id))

	var token string
	var user model.User
	_, tokenErr := sess.bucket.Load(ctx, localstore.KeyToken, &token)
	found, userErr := sess.bucket.Load(ctx, localstore.KeyUser, &user)
	switch {
	case tokenErr != nil || userErr != nil:
		logger.Warn("load cached identity error", zap.NamedError("token", tokenErr), zap.NamedError("user", userErr))
	case found && token != "":
		sess.token = token
		sess.user = &user
	}

	sess.cart.SwitchIdentity(backend.WithToken(ctx, sess.token), sess.user)

	wl, err := wishlist.Load(ctx, sess.bucket)
	if err != nil {
		logger.Warn("load wishlist error", zap.Error(err))
	}
	sess.wishlist = wl

	sess.bouquet = bouquet.NewDesign()
	if _, err := sess.bucket.Load(ctx, localstore.KeyBouquet, &sess.bouquet); err != nil {
		logger.Warn("load bouquet error", zap.Error(err))
		sess.bouquet = bouquet.NewDesign()
	}
	if sess.bouquet.Flowers == nil {
		sess.bouquet.Flowers = []bouquet.Flower{}
	}
	sess.hydrated = true
}

func (sess *Session) stop() {
	sess.pulse.Stop()
	sess.toaster.Stop()
}

func (sess *Session) view() *View {
	v := &View{
		Authenticated: sess.user != nil,
		Cart: CartView{
			Lines: sess.cart.Lines(),
			Count: sess.cart.Count(),
			Total: sess.cart.Total(),
			Pulse: sess.pulse.Active(),
		},
		Selection: sess.selection,
		Toast:     sess.toaster.Current(),
	}
	if v.Cart.Lines == nil {
		v.Cart.Lines = []model.CartLine{}
	}
	if sess.user != nil {
		u := *sess.user
		v.User = &u
	}
	if sess.wishlist != nil {
		v.WishlistCount = sess.wishlist.Count()
	}
	return v
}

// email возвращает адрес вошедшего покупателя или пустую строку.
func (sess *Session) email() string {
	if sess.user == nil {
		return ""
	}
	return sess.user.Email
}

// View возвращает текущее состояние сессии.
func (s *Service) View(ctx context.Context, sid string) *View {
	sess, _ := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	return sess.view()
}
