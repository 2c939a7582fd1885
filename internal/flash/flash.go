// Package flash содержит кратковременные сигналы интерфейса с автоматическим сбросом по таймеру.
package flash

import (
	"sync"
	"time"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

const (
	// DefaultPulseDuration задаёт длительность анимации корзины после добавления товара.
	DefaultPulseDuration = 600 * time.Millisecond
	// DefaultToastTTL задаёт время показа уведомления.
	DefaultToastTTL = 3500 * time.Millisecond
)

// Pulse представляет булев сигнал, который гаснет сам через заданное время.
type Pulse struct {
	mu       sync.Mutex
	duration time.Duration
	active   bool
	timer    *time.Timer
	gen      uint64
}

// NewPulse создаёт сигнал с указанной длительностью.
func NewPulse(d time.Duration) *Pulse {
	if d <= 0 {
		d = DefaultPulseDuration
	}
	return &Pulse{duration: d}
}

// Trigger включает сигнал. Повторный вызов перезапускает отсчёт.
func (p *Pulse) Trigger() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
	}

	p.active = true
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(p.duration, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		// Сработавший после перезапуска таймер не должен гасить новый сигнал.
		if p.gen == gen {
			p.active = false
			p.timer = nil
		}
	})
}

// Active сообщает, включён ли сигнал.
func (p *Pulse) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Stop гасит сигнал и отменяет ожидающий таймер.
func (p *Pulse) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.active = false
	p.gen++
}

// Toaster хранит текущее уведомление и скрывает его по истечении ttl.
type Toaster struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *model.Toast
	timer   *time.Timer
	gen     uint64
	now     func() time.Time
}

// NewToaster создаёт очередь уведомлений из одного элемента.
func NewToaster(ttl time.Duration) *Toaster {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &Toaster{ttl: ttl, now: time.Now}
}

// Show заменяет текущее уведомление новым.
func (t *Toaster) Show(message string, kind model.ToastKind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}

	t.current = &model.Toast{Message: message, Kind: kind, ShownAt: t.now()}
	t.gen++
	gen := t.gen
	t.timer = time.AfterFunc(t.ttl, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gen == gen {
			t.current = nil
			t.timer = nil
		}
	})
}

// Current возвращает копию текущего уведомления или nil.
func (t *Toaster) Current() *model.Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return nil
	}
	toast := *t.current
	return &toast
}

// Stop скрывает уведомление и отменяет таймер.
func (t *Toaster) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.current = nil
	t.gen++
}
