package discord

import (
	"errors"
	"testing"
)

// A handler goroutine that panics must still answer the invoker with the
// generic failure message instead of letting the interaction time out.
func TestPanicRecoveryNotifiesInvoker(t *testing.T) {
	var sent []string
	reply := func(msg string) error {
		sent = append(sent, msg)
		return nil
	}
	followUp := func(msg string) error {
		t.Fatal("follow-up should not run when the initial reply succeeds")
		return nil
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				notifyPanic(r, reply, followUp)
			}
		}()
		panic("handler exploded")
	}()

	if len(sent) != 1 || sent[0] != msgGenericFailure {
		t.Errorf("sent = %v, want a single generic failure message", sent)
	}
}

func TestPanicRecoveryFallsBackToFollowUp(t *testing.T) {
	var followed []string
	reply := func(string) error {
		// Initial response already consumed, e.g. after a Defer
		return errors.New("interaction already acknowledged")
	}
	followUp := func(msg string) error {
		followed = append(followed, msg)
		return nil
	}

	notifyPanic("handler exploded", reply, followUp)

	if len(followed) != 1 || followed[0] != msgGenericFailure {
		t.Errorf("followed = %v, want a single generic failure message", followed)
	}
}

func TestPanicRecoverySwallowsDeliveryFailure(t *testing.T) {
	reply := func(string) error { return errors.New("reply failed") }
	followUp := func(string) error { return errors.New("follow-up failed") }

	// Both deliveries fail: logged and swallowed, never re-panics
	notifyPanic("handler exploded", reply, followUp)
}

func TestDeliverEphemeral(t *testing.T) {
	var got string
	deliverEphemeral(func(msg string) error {
		got = msg
		return nil
	}, "warn", msgGuildOnly)

	if got != msgGuildOnly {
		t.Errorf("delivered %q, want %q", got, msgGuildOnly)
	}

	// A failed delivery is logged and swallowed
	deliverEphemeral(func(string) error {
		return errors.New("delivery failed")
	}, "warn", msgMissingPermission)
}
