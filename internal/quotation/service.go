package quotation

import (
	"context"
	"fmt"

	"routeseven-be/internal/address"
	"routeseven-be/internal/cart"
	"routeseven-be/internal/logger"
	"routeseven-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentRenderer produces the finished quotation document bytes. Implemented
// by internal/render; declared here so the service does not depend on the PDF
// machinery directly.
type DocumentRenderer interface {
	Render(q *Quotation, owner *user.User, addr *address.Address) ([]byte, error)
}

type Service interface {
	// CreateFromCart snapshots the owner's cart into a draft quotation,
	// persists it, then clears the cart.
	CreateFromCart(ctx context.Context, ownerID uint) (*Quotation, error)

	// Download renders the quotation as a PDF. The ownership check happens
	// before any rendering work. Returns the bytes and suggested filename.
	Download(ctx context.Context, ownerID uint, id uuid.UUID) ([]byte, string, error)

	ListByOwner(ctx context.Context, ownerID uint) ([]*Quotation, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, next Status) error
}

type service struct {
	builder  *Builder
	repo     Repository
	cartRepo cart.Repository
	resolver Resolver
	addrRepo address.Repository
	userRepo user.Repository
	renderer DocumentRenderer
}

func NewService(
	builder *Builder,
	repo Repository,
	cartRepo cart.Repository,
	resolver Resolver,
	addrRepo address.Repository,
	userRepo user.Repository,
	renderer DocumentRenderer,
) Service {
	return &service{
		builder:  builder,
		repo:     repo,
		cartRepo: cartRepo,
		resolver: resolver,
		addrRepo: addrRepo,
		userRepo: userRepo,
		renderer: renderer,
	}
}

func (s *service) CreateFromCart(ctx context.Context, ownerID uint) (*Quotation, error) {
	log := logger.FromCtx(ctx).With(zap.String("subsystem", "quotation.service"))

	c, err := s.cartRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrEmptyCart
	}

	q, err := s.builder.Build(ctx, c, s.resolver)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}

	// There is no transaction spanning persist and clear. A failure here
	// leaves the quotation persisted and the cart intact; re-running merely
	// produces a duplicate quotation, so log and move on.
	if err := s.cartRepo.Clear(ctx, c.ID); err != nil {
		log.Warn("quotation persisted but cart clear failed",
			zap.String("quotation_id", q.ID.String()),
			zap.String("cart_id", c.ID),
			zap.Error(err),
		)
	}

	log.Info("quotation created",
		zap.String("quotation_id", q.ID.String()),
		zap.String("number", q.Number),
		zap.Uint("owner_id", ownerID),
		zap.Int("items", len(q.Items)),
		zap.Int64("total_minor", q.Total.Minor),
	)

	return q, nil
}

func (s *service) Download(ctx context.Context, ownerID uint, id uuid.UUID) ([]byte, string, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if q.OwnerID != ownerID {
		return nil, "", ErrForbidden
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, "", err
	}

	addr, err := s.addrRepo.FirstByUser(ctx, ownerID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.renderer.Render(q, owner, addr)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("quotation-%s.pdf", q.ID)
	return data, filename, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uint) ([]*Quotation, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, next Status) error {
	return s.repo.UpdateStatus(ctx, id, next)
}
