package comparison

import (
	"sync"
	"time"

	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/model"

	"github.com/rs/zerolog/log"
)

const (
	MaxSelected = 2

	DefaultNoticeDuration = time.Second * 3
)

// Selection holds the products picked for a side-by-side comparison. It is never persisted.
type Selection struct {
	mu       sync.Mutex
	products []model.Product

	noticeTTL   time.Duration
	notice      string
	noticeTimer *time.Timer
}

func NewSelection(noticeTTL time.Duration) *Selection {
	if noticeTTL <= 0 {
		noticeTTL = DefaultNoticeDuration
	}
	return &Selection{noticeTTL: noticeTTL}
}

// Toggle unselects product when it is selected (by id) and selects it otherwise.
// Selecting a third product fails with ierr.SelectionFull and raises a notice.
func (s *Selection) Toggle(product model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.Id == product.Id {
			s.products = append(s.products[:i:i], s.products[i+1:]...)
			return nil
		}
	}

	if len(s.products) >= MaxSelected {
		log.Debug().Str("productId", product.Id).Msg("comparison selection is full")
		s.raiseNotice(ierr.UserMessage(ierr.SelectionFull))
		return ierr.SelectionFull
	}

	s.products = append(s.products, product.Snapshot())
	return nil
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
}

// Products returns copies of the selected products in selection order.
func (s *Selection) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Snapshot()
	}
	return out
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

func (s *Selection) IsSelected(productId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Id == productId {
			return true
		}
	}
	return false
}

// Notice returns the transient message raised by the last rejected toggle, until it auto-dismisses.
func (s *Selection) Notice() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice, s.notice != ""
}

// raiseNotice must be called with mu held. A new notice restarts the dismiss timer.
func (s *Selection) raiseNotice(msg string) {
	s.notice = msg
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(s.noticeTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// a later notice owns its own timer
		if s.noticeTimer == timer {
			s.notice = ""
			s.noticeTimer = nil
		}
	})
	s.noticeTimer = timer
}
