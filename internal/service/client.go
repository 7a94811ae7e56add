package service

import (
	"context"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) Add(ctx context.Context, c *domain.Client) error {
	if c.FirstName == "" && c.LastName == "" {
		return domain.NewValidationError("first_name", "a name is required")
	}
	if c.Email == "" && c.Phone == "" {
		return domain.NewValidationError("email", "an email or phone number is required")
	}
	return s.clientRepo.Create(ctx, c)
}

func (s *clientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) Update(ctx context.Context, c *domain.Client) error {
	if c.FirstName == "" && c.LastName == "" {
		return domain.NewValidationError("first_name", "a name is required")
	}
	return s.clientRepo.Update(ctx, c)
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	return s.clientRepo.Delete(ctx, id)
}

func (s *clientService) List(ctx context.Context, query string, page, pageSize int) ([]domain.Client, int, error) {
	return s.clientRepo.List(ctx, query, normalizePage(page), normalizePageSize(pageSize))
}
