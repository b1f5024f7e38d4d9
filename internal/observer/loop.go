package observer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/SeamusWaldron/cubeanim"
)

var ErrStopped = errors.New("observer: loop stopped")

type triggerReq struct {
	msg   TriggerMsg
	reply chan ResultMsg
}

type joinReq struct {
	id  string
	out chan []byte
}

// Loop owns a controller on a single goroutine. It ticks the controller at
// a fixed frame rate, applies triggers between frames and fans snapshots
// out to subscribers.
type Loop struct {
	ctrl      *cubeanim.Controller
	frameRate int
	log       *slog.Logger

	triggers chan triggerReq
	join     chan joinReq
	leave    chan string
	done     chan struct{}

	frame  uint64
	subs   map[string]chan []byte
	halted bool
}

func NewLoop(ctrl *cubeanim.Controller, frameRate int, logger *slog.Logger) *Loop {
	if frameRate <= 0 {
		frameRate = 60
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		ctrl:      ctrl,
		frameRate: frameRate,
		log:       logger,
		triggers:  make(chan triggerReq),
		join:      make(chan joinReq),
		leave:     make(chan string, 16),
		done:      make(chan struct{}),
		subs:      make(map[string]chan []byte),
	}
}

// FrameRate returns the ticks per second.
func (l *Loop) FrameRate() int { return l.frameRate }

// Run drives the controller until ctx is done. Subscriber channels are
// closed on return.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer func() {
		for id, out := range l.subs {
			close(out)
			delete(l.subs, id)
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(l.frameRate))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case req := <-l.triggers:
			req.reply <- l.apply(req.msg)

		case j := <-l.join:
			l.subs[j.id] = j.out
			l.send(j.out, l.snapshot())

		case id := <-l.leave:
			if out, ok := l.subs[id]; ok {
				close(out)
				delete(l.subs, id)
			}

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := l.ctrl.Tick(dt); err != nil && !l.halted {
				l.halted = true
				l.log.Error("controller halted", "error", err)
			}
			l.frame++
			if len(l.subs) > 0 {
				b := l.snapshot()
				for _, out := range l.subs {
					l.send(out, b)
				}
			}
		}
	}
}

func (l *Loop) snapshot() []byte {
	b, err := json.Marshal(NewSnapshot(l.frame, l.ctrl))
	if err != nil {
		l.log.Error("snapshot encode failed", "error", err)
		return nil
	}
	return b
}

// send drops the message when the subscriber is behind.
func (l *Loop) send(out chan []byte, b []byte) {
	if b == nil {
		return
	}
	select {
	case out <- b:
	default:
	}
}

func (l *Loop) apply(msg TriggerMsg) ResultMsg {
	res := ResultMsg{Type: TypeResult, Action: msg.Action}

	var accepted bool
	var err error
	switch msg.Action {
	case ActionSolve:
		accepted, err = l.ctrl.Solve()
	case ActionShuffle:
		accepted, err = l.ctrl.Shuffle()
	case ActionMove:
		if len(msg.Letter) != 1 {
			err = cubeanim.ErrInvalidToken
			break
		}
		accepted, err = l.ctrl.CustomMove(msg.Letter[0], msg.Upper)
	default:
		res.Error = "unknown action"
		return res
	}

	res.Accepted = accepted
	if err != nil {
		res.Error = err.Error()
	}
	l.log.Debug("trigger", "action", msg.Action, "letter", msg.Letter, "accepted", accepted, "error", err)
	return res
}

// Trigger applies msg on the loop goroutine and returns the outcome.
func (l *Loop) Trigger(ctx context.Context, msg TriggerMsg) (ResultMsg, error) {
	req := triggerReq{msg: msg, reply: make(chan ResultMsg, 1)}
	select {
	case l.triggers <- req:
	case <-l.done:
		return ResultMsg{}, ErrStopped
	case <-ctx.Done():
		return ResultMsg{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res, nil
	case <-ctx.Done():
		return ResultMsg{}, ctx.Err()
	}
}

// Join subscribes out to snapshots under id.
func (l *Loop) Join(ctx context.Context, id string, out chan []byte) error {
	select {
	case l.join <- joinReq{id: id, out: out}:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Leave unsubscribes id. It returns once the loop has accepted the
// request or stopped.
func (l *Loop) Leave(id string) {
	select {
	case l.leave <- id:
	case <-l.done:
	}
}
