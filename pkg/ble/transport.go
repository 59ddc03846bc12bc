// Package ble exposes the firmware's command channel: a peripheral advertising
// a fixed name, one write characteristic for navigation commands and one
// notify characteristic for status strings pushed back to the companion app.
package ble

import (
	"context"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set"
	"github.com/go-ble/ble"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/guidecane/firmware/pkg/models"
	"github.com/guidecane/firmware/pkg/util"
)

const (
	advertiseRetryDelay = time.Second
	startTimeout        = 5 * time.Second
)

// Transport is the concrete BLE adapter injected into the arbiter
type Transport struct {
	name         string
	listener     models.TransportListener
	methods      coreMethods
	startTimeout time.Duration
	log          *logrus.Entry

	mutex    *sync.Mutex
	notifier ble.Notifier
	centrals mapset.Set
	state    models.ConnectionState
	cancel   context.CancelFunc
}

// NewTransport constructs a transport advertising under the given device name
func NewTransport(name string, listener models.TransportListener) *Transport {
	return newTransport(name, listener, &realCoreMethods{})
}

func newTransport(name string, listener models.TransportListener, methods coreMethods) *Transport {
	return &Transport{
		name:         name,
		listener:     listener,
		methods:      methods,
		startTimeout: startTimeout,
		log:          logrus.WithField("component", "ble"),
		mutex:        &sync.Mutex{},
		centrals:     mapset.NewSet(),
		state:        models.Disconnected,
	}
}

// Start brings up the hci device, registers the service and begins advertising.
// Bring-up is bounded: a wedged hci stack yields an error, not a hang.
// Obstacle and SOS detection never depend on this succeeding at runtime.
func (t *Transport) Start() error {
	if err := util.Timeout(t.methods.SetDefaultDevice, t.startTimeout); err != nil {
		return errors.Wrap(err, "SetDefaultDevice issue")
	}
	service := t.service()
	if err := util.Timeout(func() error { return t.methods.AddService(service) }, t.startTimeout); err != nil {
		return errors.Wrap(err, "AddService issue")
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	go t.advertiseLoop(ctx)
	return nil
}

// Stop ends advertising and tears down the hci device
func (t *Transport) Stop() error {
	if t.cancel != nil {
		t.cancel()
	}
	return t.methods.Stop()
}

// State returns whether a companion app is currently subscribed
func (t *Transport) State() models.ConnectionState {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.state
}

// Notify pushes a status string to the subscribed peer. While disconnected the
// message is dropped on the floor: never queued, never retried.
func (t *Transport) Notify(msg string) error {
	t.mutex.Lock()
	n := t.notifier
	state := t.state
	t.mutex.Unlock()
	if state != models.Connected || n == nil {
		t.log.WithField("msg", msg).Debug("notify skipped while disconnected")
		return nil
	}
	if _, err := n.Write([]byte(msg)); err != nil {
		return errors.Wrap(err, "notifier.Write issue")
	}
	return nil
}

// advertiseLoop keeps the device discoverable. AdvertiseNameAndServices
// returns when a central connects or the stack errors; either way advertising
// must resume so a peer can always reconnect.
func (t *Transport) advertiseLoop(ctx context.Context) {
	u := ble.MustParse(util.CaneServiceUUID)
	for ctx.Err() == nil {
		if err := t.methods.AdvertiseNameAndServices(ctx, t.name, u); err != nil {
			t.listener.OnInternalError(errors.Wrap(err, "AdvertiseNameAndServices issue"))
			time.Sleep(advertiseRetryDelay)
		}
	}
}

func (t *Transport) service() *ble.Service {
	service := ble.NewService(ble.MustParse(util.CaneServiceUUID))

	command := ble.NewCharacteristic(ble.MustParse(util.CommandCharUUID))
	command.HandleWrite(ble.WriteHandlerFunc(func(req ble.Request, rsp ble.ResponseWriter) {
		data := make([]byte, len(req.Data()))
		copy(data, req.Data())
		t.onCommandWrite(addrFromReq(req), data)
	}))
	service.AddCharacteristic(command)

	status := ble.NewCharacteristic(ble.MustParse(util.StatusCharUUID))
	status.HandleNotify(ble.NotifyHandlerFunc(func(req ble.Request, n ble.Notifier) {
		t.onSubscribe(addrFromReq(req), n)
	}))
	service.AddCharacteristic(status)

	return service
}

func (t *Transport) onCommandWrite(addr string, data []byte) {
	if len(data) == 0 {
		t.log.WithField("addr", addr).Warn("empty command write dropped")
		return
	}
	t.listener.OnCommandWritten(data)
}

// onSubscribe runs on the ble stack's goroutine for the lifetime of one
// notify subscription.
func (t *Transport) onSubscribe(addr string, n ble.Notifier) {
	session := uuid.New().String()
	t.mutex.Lock()
	t.notifier = n
	t.centrals.Add(addr)
	t.state = models.Connected
	t.mutex.Unlock()
	t.log.WithField("addr", addr).WithField("session", session).Info("central subscribed")
	t.listener.OnConnect(addr)

	<-n.Context().Done()

	t.mutex.Lock()
	t.centrals.Remove(addr)
	if t.notifier == n {
		t.notifier = nil
	}
	empty := t.centrals.Cardinality() == 0
	if empty {
		t.state = models.Disconnected
	}
	t.mutex.Unlock()
	t.log.WithField("addr", addr).WithField("session", session).Info("central gone")
	if empty {
		t.listener.OnDisconnect(addr)
	}
}

func addrFromReq(req ble.Request) string {
	return strings.ToUpper(req.Conn().RemoteAddr().String())
}
