package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
)

// PaymentMethodService handles payment method business logic.
type PaymentMethodService struct {
	paymentRepo *repository.PaymentMethodRepository
	media       *MediaService
}

// NewPaymentMethodService creates a new PaymentMethodService.
func NewPaymentMethodService(paymentRepo *repository.PaymentMethodRepository, media *MediaService) *PaymentMethodService {
	return &PaymentMethodService{paymentRepo: paymentRepo, media: media}
}

func (s *PaymentMethodService) GetAll(ctx context.Context, activeOnly bool) ([]model.PaymentMethod, error) {
	return s.paymentRepo.GetAll(ctx, activeOnly)
}

func (s *PaymentMethodService) GetByID(ctx context.Context, id int) (*model.PaymentMethod, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPaymentMethodNotFound
	}
	return p, err
}

// Create inserts a payment method with an optional logo. Status defaults to Active.
func (s *PaymentMethodService) Create(ctx context.Context, form *model.PaymentMethodForm, logo *multipart.FileHeader) (*model.PaymentMethod, error) {
	p := &model.PaymentMethod{Name: strings.TrimSpace(form.Name), Status: form.Status}
	if p.Status == "" {
		p.Status = model.StatusActive
	}

	if logo != nil {
		path, err := s.media.SaveImage(logo, FolderPaymentMethods)
		if err != nil {
			return nil, err
		}
		p.Logo = &path
	}

	if err := s.paymentRepo.Create(ctx, p); err != nil {
		s.media.Delete(p.Logo)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPaymentMethodExists
		}
		return nil, err
	}
	return p, nil
}

// Update modifies a payment method. A new logo replaces the previous file.
func (s *PaymentMethodService) Update(ctx context.Context, id int, form *model.PaymentMethodForm, logo *multipart.FileHeader) (*model.PaymentMethod, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldLogo := p.Logo
	p.Name = strings.TrimSpace(form.Name)
	if form.Status != "" {
		p.Status = form.Status
	}
	if logo != nil {
		path, err := s.media.SaveImage(logo, FolderPaymentMethods)
		if err != nil {
			return nil, err
		}
		p.Logo = &path
	}

	if err := s.paymentRepo.Update(ctx, p); err != nil {
		if logo != nil {
			s.media.Delete(p.Logo)
		}
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrPaymentMethodNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrPaymentMethodExists
		}
		return nil, err
	}

	if logo != nil {
		s.media.Delete(oldLogo)
	}
	return p, nil
}

// Delete removes a payment method and its logo.
func (s *PaymentMethodService) Delete(ctx context.Context, id int) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPaymentMethodNotFound
		}
		return err
	}
	s.media.Delete(p.Logo)
	return nil
}
