package appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

var sessionStart = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func onlineAppointment(status Status) *models.Appointment {
	return &models.Appointment{
		SessionType:        string(OnlineMeeting),
		AppointmentStatus:  string(status),
		ScheduledStartTime: sessionStart,
		ScheduledEndTime:   sessionStart.Add(time.Hour),
	}
}

func inPersonAppointment(status Status) *models.Appointment {
	return &models.Appointment{
		SessionType:        string(InitialConsultation),
		AppointmentStatus:  string(status),
		ScheduledStartTime: sessionStart,
		ScheduledEndTime:   sessionStart.Add(2 * time.Hour),
	}
}

func TestMarkScheduled(t *testing.T) {
	ap := onlineAppointment(StatusPaymentPending)
	if err := MarkScheduled(ap); err != nil {
		t.Fatalf("MarkScheduled: %v", err)
	}
	if ap.AppointmentStatus != string(StatusScheduled) {
		t.Fatalf("status = %s", ap.AppointmentStatus)
	}
	if ap.PaymentStatus != string(PaymentPaid) {
		t.Fatalf("payment status = %s", ap.PaymentStatus)
	}

	if err := MarkScheduled(ap); !schederr.Is(err, schederr.KindInvalidTransition) {
		t.Fatalf("second MarkScheduled: %v", err)
	}
}

func TestStartOnlineSession_Window(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		ok   bool
	}{
		{"exactly 15 minutes early", sessionStart.Add(-15 * time.Minute), true},
		{"16 minutes early", sessionStart.Add(-16 * time.Minute), false},
		{"at scheduled start", sessionStart, true},
		{"at scheduled end", sessionStart.Add(time.Hour), true},
		{"one minute after end", sessionStart.Add(time.Hour + time.Minute), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ap := onlineAppointment(StatusScheduled)
			err := StartOnlineSession(ap, tc.now)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected start, got %v", err)
				}
				if ap.AppointmentStatus != string(StatusInProgress) {
					t.Fatalf("status = %s", ap.AppointmentStatus)
				}
				if ap.ActualStartTime == nil || !ap.ActualStartTime.Equal(tc.now) {
					t.Fatalf("actual start = %v", ap.ActualStartTime)
				}
				return
			}
			if !schederr.Is(err, schederr.KindSessionStart) {
				t.Fatalf("expected session start rejection, got %v", err)
			}
		})
	}
}

func TestStartOnlineSession_Guards(t *testing.T) {
	now := sessionStart

	ap := inPersonAppointment(StatusScheduled)
	if err := StartOnlineSession(ap, now); !schederr.Is(err, schederr.KindSessionStart) {
		t.Fatalf("in-person start: %v", err)
	}

	ap = onlineAppointment(StatusCompleted)
	if err := StartOnlineSession(ap, now); !schederr.Is(err, schederr.KindInvalidTransition) {
		t.Fatalf("completed start: %v", err)
	}
}

func TestVerifySession_Window(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		ok   bool
	}{
		{"exactly 30 minutes early", sessionStart.Add(-30 * time.Minute), true},
		{"31 minutes early", sessionStart.Add(-31 * time.Minute), false},
		{"at scheduled start", sessionStart, true},
		{"exactly 30 minutes late", sessionStart.Add(30 * time.Minute), true},
		{"31 minutes late", sessionStart.Add(31 * time.Minute), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ap := inPersonAppointment(StatusScheduled)
			err := VerifySession(ap, tc.now)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected verification, got %v", err)
				}
				if ap.SessionVerifiedAt == nil || !ap.SessionVerifiedAt.Equal(tc.now) {
					t.Fatalf("verified at = %v", ap.SessionVerifiedAt)
				}
				// Verification records attendance without advancing
				// the appointment lifecycle.
				if ap.AppointmentStatus != string(StatusScheduled) {
					t.Fatalf("status changed to %s", ap.AppointmentStatus)
				}
				return
			}
			if !schederr.Is(err, schederr.KindQRVerification) {
				t.Fatalf("expected verification rejection, got %v", err)
			}
		})
	}
}

func TestVerifySession_Guards(t *testing.T) {
	now := sessionStart

	ap := onlineAppointment(StatusScheduled)
	if err := VerifySession(ap, now); !schederr.Is(err, schederr.KindQRVerification) {
		t.Fatalf("online verify: %v", err)
	}

	ap = inPersonAppointment(StatusScheduled)
	if err := VerifySession(ap, now); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if err := VerifySession(ap, now); !schederr.Is(err, schederr.KindQRVerification) {
		t.Fatalf("double verify: %v", err)
	}
}

func TestComplete(t *testing.T) {
	now := sessionStart.Add(time.Hour)

	for _, from := range []Status{StatusScheduled, StatusInProgress} {
		ap := onlineAppointment(from)
		if err := Complete(ap, now); err != nil {
			t.Fatalf("complete from %s: %v", from, err)
		}
		if ap.AppointmentStatus != string(StatusCompleted) {
			t.Fatalf("status = %s", ap.AppointmentStatus)
		}
		if ap.ActualEndTime == nil || !ap.ActualEndTime.Equal(now) {
			t.Fatalf("actual end = %v", ap.ActualEndTime)
		}
	}

	for _, from := range []Status{StatusPaymentPending, StatusCancelled, StatusCompleted, StatusNoShow} {
		ap := onlineAppointment(from)
		if err := Complete(ap, now); !schederr.Is(err, schederr.KindInvalidTransition) {
			t.Fatalf("complete from %s: %v", from, err)
		}
	}
}

func TestCancel(t *testing.T) {
	before := sessionStart.Add(-time.Minute)
	after := sessionStart.Add(time.Minute)

	ap := onlineAppointment(StatusScheduled)
	if err := Cancel(ap, "conflict came up", before); err != nil {
		t.Fatalf("cancel before start: %v", err)
	}
	if ap.AppointmentStatus != string(StatusCancelled) {
		t.Fatalf("status = %s", ap.AppointmentStatus)
	}
	if ap.CancellationReason != "conflict came up" {
		t.Fatalf("reason = %q", ap.CancellationReason)
	}

	ap = onlineAppointment(StatusScheduled)
	if err := Cancel(ap, "", after); !schederr.Is(err, schederr.KindCancellation) {
		t.Fatalf("cancel after start: %v", err)
	}

	ap = onlineAppointment(StatusCompleted)
	if err := Cancel(ap, "", before); !schederr.Is(err, schederr.KindCancellation) {
		t.Fatalf("cancel completed: %v", err)
	}
}

func TestMarkNoShow(t *testing.T) {
	end := sessionStart.Add(time.Hour)

	cases := []struct {
		name string
		now  time.Time
		ok   bool
	}{
		{"exactly 30 minutes after end", end.Add(30 * time.Minute), true},
		{"29 minutes after end", end.Add(29 * time.Minute), false},
		{"during session", sessionStart.Add(30 * time.Minute), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ap := onlineAppointment(StatusScheduled)
			err := MarkNoShow(ap, "client never joined", tc.now)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected no-show, got %v", err)
				}
				if ap.AppointmentStatus != string(StatusNoShow) {
					t.Fatalf("status = %s", ap.AppointmentStatus)
				}
				return
			}
			if !schederr.Is(err, schederr.KindNoShow) {
				t.Fatalf("expected no-show rejection, got %v", err)
			}
		})
	}

	ap := onlineAppointment(StatusCompleted)
	err := MarkNoShow(ap, "", end.Add(time.Hour))
	if !schederr.Is(err, schederr.KindInvalidTransition) {
		t.Fatalf("no-show on completed: %v", err)
	}
}

func TestNewQRCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewQRCode()
		if len(code) != QRCodeLength {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		if code != strings.ToUpper(code) {
			t.Fatalf("code %q is not upper-case", code)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q", code)
		}
		seen[code] = true
	}
}
