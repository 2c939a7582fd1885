package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/floran-storefront/internal/backend"
	"github.com/mmeshcher/floran-storefront/internal/localstore"
	"github.com/mmeshcher/floran-storefront/internal/model"
	"github.com/mmeshcher/floran-storefront/internal/validation"
)

// Login выполняет вход и переключает корзину сессии на серверную корзину пользователя.
func (s *Service) Login(ctx context.Context, sid, email, password string) (*View, error) {
	if err := validation.ValidateLogin(email, password); err != nil {
		return nil, err
	}

	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.signIn(ctx, sess, res)
	sess.toaster.Show(fmt.Sprintf("Welcome back, %s!", res.User.FirstName), model.ToastSuccess)
	return sess.view(), nil
}

// Register создаёт учётную запись, выполняет вход и переключает корзину.
func (s *Service) Register(ctx context.Context, sid string, form validation.Registration) (*View, error) {
	if err := validation.ValidateRegistration(form); err != nil {
		return nil, err
	}

	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	res, err := s.backend.Register(ctx, backend.RegisterRequest{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		Password:     form.Password,
		ReferralCode: form.ReferralCode,
	})
	if err != nil {
		return nil, err
	}

	s.signIn(ctx, sess, res)
	sess.toaster.Show(fmt.Sprintf("Welcome to Floran, %s!", res.User.FirstName), model.ToastSuccess)
	return sess.view(), nil
}

// Logout удаляет сохранённые токен и пользователя и возвращает сессию к гостевой корзине.
func (s *Service) Logout(ctx context.Context, sid string) *View {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	for _, key := range []string{localstore.KeyToken, localstore.KeyUser} {
		if err := sess.bucket.Delete(ctx, key); err != nil {
			s.logger.Warn("remove cached identity error", zap.Error(err), zap.String("session", sid), zap.String("key", key))
		}
	}

	sess.token = ""
	sess.user = nil
	sess.selection = Selection{}
	sess.cart.SwitchIdentity(backend.WithToken(ctx, ""), nil)
	sess.toaster.Show("You have been logged out", model.ToastSuccess)
	return sess.view()
}

func (s *Service) signIn(ctx context.Context, sess *Session, res *backend.AuthResult) {
	user := res.User
	sess.token = res.Token
	sess.user = &user
	sess.selection = Selection{}

	if err := sess.bucket.Save(ctx, localstore.KeyToken, res.Token); err != nil {
		s.logger.Warn("save token error", zap.Error(err), zap.String("session", sess.id))
	}
	if err := sess.bucket.Save(ctx, localstore.KeyUser, user); err != nil {
		s.logger.Warn("save user error", zap.Error(err), zap.String("session", sess.id))
	}

	sess.cart.SwitchIdentity(backend.WithToken(ctx, res.Token), sess.user)
}
