package models

// TransportListener receives transport events raised outside the control loop's
// call stack. OnCommandWritten runs on the ble callback goroutine; implementations
// must hand data off to the loop with proper synchronization.
type TransportListener interface {
	OnConnect(addr string)
	OnDisconnect(addr string)
	OnCommandWritten(data []byte)
	OnInternalError(error)
}
