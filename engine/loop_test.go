package engine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

// recordingGame logs every hook call
type recordingGame struct {
	calls    []string
	events   []Event
	readyErr error
	loop     *Loop
}

func (g *recordingGame) Ready(l *Loop) error {
	g.calls = append(g.calls, "ready")
	g.loop = l
	return g.readyErr
}

func (g *recordingGame) HandleEvent(ev Event) {
	g.calls = append(g.calls, "event")
	g.events = append(g.events, ev)
}

func (g *recordingGame) Draw(frame *image.RGBA) {
	g.calls = append(g.calls, "draw")
	frame.SetRGBA(0, 0, color.RGBA{1, 2, 3, 255})
}

// scriptedBackend returns one batch of events per poll
type scriptedBackend struct {
	batches   [][]Event
	polls     int
	presented int
	initErr   error
	inited    bool
	finished  int
	title     string
	size      image.Point
}

func (b *scriptedBackend) Init(w, h int) error {
	b.inited = true
	b.size = image.Pt(w, h)
	return b.initErr
}

func (b *scriptedBackend) PollEvents() []Event {
	defer func() { b.polls++ }()
	if b.polls < len(b.batches) {
		return b.batches[b.polls]
	}
	return nil
}

func (b *scriptedBackend) Present(frame *image.RGBA) error {
	b.presented++
	return nil
}

func (b *scriptedBackend) Fini() { b.finished++ }

func (b *scriptedBackend) SetTitle(title string) { b.title = title }

func TestNewLoop_Defaults(t *testing.T) {
	l := NewLoop(&scriptedBackend{}, &recordingGame{})

	if l.FPS() != 30 {
		t.Errorf("Expected 30 fps, got %d", l.FPS())
	}
	if l.Size() != image.Pt(700, 500) {
		t.Errorf("Expected 700x500, got %v", l.Size())
	}
	if l.Frame().Bounds() != image.Rect(0, 0, 700, 500) {
		t.Errorf("Expected frame to match size, got %v", l.Frame().Bounds())
	}
	if l.FrameInterval() != time.Second/30 {
		t.Errorf("Unexpected frame interval %v", l.FrameInterval())
	}

	l = NewLoop(&scriptedBackend{}, &recordingGame{}, WithFPS(0), WithSize(-1, 10))
	if l.FPS() != 30 || l.Size() != image.Pt(700, 500) {
		t.Error("Expected invalid options to be ignored")
	}
}

func TestStep_OrderAndDt(t *testing.T) {
	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	game := &recordingGame{}
	l := NewLoop(&scriptedBackend{}, game, WithTimeProvider(clock))

	key := EventKeyUp{Key: KeyRune, Rune: 'n'}
	click := EventMouseDown{Pos: image.Pt(5, 6), Button: ButtonLeft}

	if !l.Step([]Event{key, click}) {
		t.Fatal("Expected Step to continue")
	}
	if l.Dt() != 0 {
		t.Errorf("Expected zero dt on first tick, got %v", l.Dt())
	}

	want := []string{"event", "event", "draw"}
	if len(game.calls) != len(want) {
		t.Fatalf("Expected calls %v, got %v", want, game.calls)
	}
	for i := range want {
		if game.calls[i] != want[i] {
			t.Fatalf("Expected calls %v, got %v", want, game.calls)
		}
	}
	if game.events[0] != key || game.events[1] != click {
		t.Errorf("Events delivered out of order: %v", game.events)
	}
	if l.Frame().RGBAAt(0, 0) != (color.RGBA{1, 2, 3, 255}) {
		t.Error("Expected Draw to render into the loop frame")
	}

	clock.Advance(40 * time.Millisecond)
	l.Step(nil)
	if l.Dt() != 40*time.Millisecond {
		t.Errorf("Expected 40ms dt, got %v", l.Dt())
	}
	if l.FrameNumber() != 2 {
		t.Errorf("Expected frame 2, got %d", l.FrameNumber())
	}
}

func TestStep_QuitStopsDispatch(t *testing.T) {
	game := &recordingGame{}
	l := NewLoop(&scriptedBackend{}, game)

	cont := l.Step([]Event{
		EventKeyUp{Key: KeyRune, Rune: 'a'},
		EventQuit{},
		EventKeyUp{Key: KeyRune, Rune: 'b'},
	})
	if cont {
		t.Error("Expected Step to stop on quit")
	}
	if len(game.events) != 1 {
		t.Errorf("Expected only the event before quit, got %v", game.events)
	}
	for _, c := range game.calls {
		if c == "draw" {
			t.Error("Expected no draw after quit")
		}
	}
}

func TestRun_UntilQuit(t *testing.T) {
	backend := &scriptedBackend{
		batches: [][]Event{
			nil,
			{EventKeyUp{Key: KeyRune, Rune: 'x'}},
			{EventQuit{}},
		},
	}
	game := &recordingGame{}
	l := NewLoop(backend, game, WithFPS(240), WithSize(40, 30), WithTitle("Test Table"))

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if backend.size != image.Pt(40, 30) {
		t.Errorf("Expected backend init with 40x30, got %v", backend.size)
	}
	if backend.title != "Test Table" {
		t.Errorf("Expected title to reach backend, got %q", backend.title)
	}
	if game.calls[0] != "ready" || game.loop != l {
		t.Errorf("Expected Ready first with the loop, got %v", game.calls)
	}
	if backend.presented != 2 {
		t.Errorf("Expected 2 presented frames, got %d", backend.presented)
	}
	if backend.finished != 1 {
		t.Errorf("Expected Fini once, got %d", backend.finished)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	backend := &scriptedBackend{}
	l := NewLoop(backend, &recordingGame{}, WithFPS(120))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean exit on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
	if backend.presented == 0 {
		t.Error("Expected at least one frame before cancellation")
	}
	if backend.finished != 1 {
		t.Errorf("Expected Fini once, got %d", backend.finished)
	}
}

func TestRun_Errors(t *testing.T) {
	initErr := errors.New("no display")
	backend := &scriptedBackend{initErr: initErr}
	err := NewLoop(backend, &recordingGame{}).Run(context.Background())
	if !errors.Is(err, initErr) {
		t.Errorf("Expected init error, got %v", err)
	}
	if backend.finished != 0 {
		t.Error("Expected no Fini after failed Init")
	}

	readyErr := errors.New("no atlas")
	backend = &scriptedBackend{}
	game := &recordingGame{readyErr: readyErr}
	err = NewLoop(backend, game).Run(context.Background())
	if !errors.Is(err, readyErr) {
		t.Errorf("Expected ready error, got %v", err)
	}
	if backend.finished != 1 {
		t.Error("Expected Fini after failed Ready")
	}
	if backend.presented != 0 {
		t.Error("Expected no frames after failed Ready")
	}
}

// drivingBackend owns the frame clock and ticks a fixed number of times
type drivingBackend struct {
	scriptedBackend
	maxTicks int
	ticks    int
	fps      int
}

func (b *drivingBackend) Drive(ctx context.Context, fps int, tick func() error) error {
	b.fps = fps
	for b.ticks < b.maxTicks {
		b.ticks++
		if err := tick(); err != nil {
			return err
		}
	}
	return nil
}

func TestRun_Driver(t *testing.T) {
	backend := &drivingBackend{maxTicks: 5}
	backend.batches = [][]Event{nil, nil, {EventQuit{}}}
	l := NewLoop(backend, &recordingGame{}, WithFPS(60))

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Expected quit to end Run cleanly, got %v", err)
	}
	if backend.fps != 60 {
		t.Errorf("Expected driver to get 60 fps, got %d", backend.fps)
	}
	if backend.ticks != 3 || backend.presented != 2 {
		t.Errorf("Expected 3 ticks and 2 frames, got %d and %d", backend.ticks, backend.presented)
	}
	if backend.finished != 1 {
		t.Errorf("Expected Fini once, got %d", backend.finished)
	}

	// Driver ends without a quit
	backend = &drivingBackend{maxTicks: 4}
	l = NewLoop(backend, &recordingGame{})
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if backend.presented != 4 {
		t.Errorf("Expected 4 frames, got %d", backend.presented)
	}
}
