// Package lifecycle runs registered cleanup handlers when the process
// receives a shutdown signal. The tool uses it to flush logs and pending
// trace spans before an interrupted batch exits.
package lifecycle

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// Handler receives the signal that triggered shutdown.
type Handler func(os.Signal)

type HandlerID int64

var (
	defaultSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

	handlerCounter atomic.Int64

	startOnce  sync.Once
	signalChan chan os.Signal

	handlersMu sync.RWMutex
	handlers   = make(map[HandlerID]Handler)
	order      []HandlerID

	notifyFunc = signal.Notify
	stopFunc   = signal.Stop
	exitFunc   = os.Exit
)

// Register adds a shutdown handler. Handlers run in reverse registration
// order, mirroring defer semantics.
func Register(handler Handler) HandlerID {
	if handler == nil {
		return 0
	}

	startOnce.Do(startListener)

	id := HandlerID(handlerCounter.Add(1))

	handlersMu.Lock()
	handlers[id] = handler
	order = append(order, id)
	handlersMu.Unlock()

	return id
}

func Unregister(id HandlerID) {
	if id == 0 {
		return
	}

	handlersMu.Lock()
	defer handlersMu.Unlock()

	delete(handlers, id)
	for index, existing := range order {
		if existing == id {
			order = append(order[:index], order[index+1:]...)
			break
		}
	}
}

func startListener() {
	signalChan = make(chan os.Signal, 1)
	notifyFunc(signalChan, defaultSignals...)

	go func() {
		sig := <-signalChan
		RunHandlers(sig)
		exitFunc(exitCode(sig))
	}()
}

// RunHandlers executes every registered handler, newest first. A panicking
// handler does not stop the rest.
func RunHandlers(sig os.Signal) {
	handlersMu.RLock()
	snapshot := make([]HandlerID, len(order))
	copy(snapshot, order)
	handlerCopy := make(map[HandlerID]Handler, len(handlers))
	for id, handler := range handlers {
		handlerCopy[id] = handler
	}
	handlersMu.RUnlock()

	for index := len(snapshot) - 1; index >= 0; index-- {
		if handler := handlerCopy[snapshot[index]]; handler != nil {
			callHandler(handler, sig)
		}
	}
}

func callHandler(handler Handler, sig os.Signal) {
	defer func() {
		_ = recover()
	}()
	handler(sig)
}

func exitCode(sig os.Signal) int {
	switch sig {
	case os.Interrupt:
		return 130
	case syscall.SIGTERM:
		return 143
	default:
		return 1
	}
}

// reset clears global state (tests only).
func reset() {
	if signalChan != nil {
		stopFunc(signalChan)
	}
	signalChan = nil

	startOnce = sync.Once{}
	handlerCounter.Store(0)

	handlersMu.Lock()
	handlers = make(map[HandlerID]Handler)
	order = nil
	handlersMu.Unlock()

	notifyFunc = signal.Notify
	stopFunc = signal.Stop
	exitFunc = os.Exit
}
