package notify

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include "hook_darwin.h"
*/
import "C"

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// listenBridge receives the process-wide IOKit power source notifications.
// IOPSNotificationCreateRunLoopSource is a single callback source, so there
// is exactly one bridge per process; multiplexing happens in the bridge.
var listenBridge *Bridge

//export powerSourcesChangedCallback
func powerSourcesChangedCallback() {
	logrus.Traceln("received power source change notification")
	if listenBridge != nil {
		listenBridge.Notify()
	}
}

// ListenPowerSourceChanges registers for IOKit power source change
// notifications and forwards each firing to b. It blocks running the
// notification run loop until StopListeningPowerSourceChanges is called,
// so callers run it on its own goroutine.
func ListenPowerSourceChanges(b *Bridge) error {
	listenBridge = b
	logrus.Info("registered and listening for power source changes")
	if int(C.ListenPowerSourceChanges()) != 0 {
		return fmt.Errorf("IOPSNotificationCreateRunLoopSource failed")
	}
	return nil
}

// StopListeningPowerSourceChanges stops the notification run loop started by
// ListenPowerSourceChanges.
func StopListeningPowerSourceChanges() {
	C.StopListeningPowerSourceChanges()
}
