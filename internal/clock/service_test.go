package clock_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/clock"
	"github.com/frahmantamala/timetracker/internal/employee"
)

func TestClock(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Clock Service Suite")
}

type mockClockRepo struct {
	logs      []*clock.ClockLog
	lastErr   error
	appendErr error
	nextID    int64
}

func newMockClockRepo() *mockClockRepo {
	return &mockClockRepo{nextID: 1}
}

func (m *mockClockRepo) LastLog(employeeID int64) (*clock.ClockLog, error) {
	if m.lastErr != nil {
		return nil, m.lastErr
	}
	var last *clock.ClockLog
	for _, l := range m.logs {
		if l.EmployeeID != employeeID {
			continue
		}
		if last == nil || l.Timestamp.After(last.Timestamp) {
			last = l
		}
	}
	return last, nil
}

func (m *mockClockRepo) Append(log *clock.ClockLog) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	log.ID = m.nextID
	m.nextID++
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockClockRepo) LastLogBefore(employeeID int64, t time.Time) (*clock.ClockLog, error) {
	var last *clock.ClockLog
	for _, l := range m.logs {
		if l.EmployeeID != employeeID || !l.Timestamp.Before(t) {
			continue
		}
		if last == nil || l.Timestamp.After(last.Timestamp) {
			last = l
		}
	}
	return last, nil
}

func (m *mockClockRepo) ListInWindow(employeeID int64, start, end time.Time) ([]*clock.ClockLog, error) {
	var out []*clock.ClockLog
	for _, l := range m.logs {
		if l.EmployeeID != employeeID {
			continue
		}
		if l.Timestamp.Before(start) || l.Timestamp.After(end) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type mockAuthenticator struct {
	emp *employee.Employee
	err error
}

func (m *mockAuthenticator) Identify(deviceToken, passcode string) (int64, *employee.Employee, error) {
	if m.err != nil {
		return 0, nil, m.err
	}
	return m.emp.PropertyID, m.emp, nil
}

type mockHours struct {
	hours float64
	err   error
	calls int
}

func (m *mockHours) HoursForWindow(employeeID int64, start, end time.Time) (float64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.hours, nil
}

var _ = Describe("ClockService", func() {
	var (
		repo    *mockClockRepo
		authn   *mockAuthenticator
		hours   *mockHours
		service *clock.Service
		emp     *employee.Employee
	)

	BeforeEach(func() {
		repo = newMockClockRepo()
		emp = &employee.Employee{ID: 7, PropertyID: 3, FirstName: "Alice", LastName: "Nguyen", Status: employee.StatusActive}
		authn = &mockAuthenticator{emp: emp}
		hours = &mockHours{hours: 4.5}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		service = clock.NewService(repo, authn, hours, logger)
	})

	Describe("Clock", func() {
		It("defaults to IN with no history", func() {
			result, err := service.Clock("device-token", "1234")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
			Expect(result.Type).To(Equal(clock.TypeIn))
			Expect(result.HoursToday).To(Equal(4.5))
			Expect(repo.logs).To(HaveLen(1))
		})

		It("toggles OUT after an IN", func() {
			repo.logs = append(repo.logs, &clock.ClockLog{EmployeeID: 7, Type: clock.TypeIn, Timestamp: time.Now().Add(-time.Hour)})

			result, err := service.Clock("device-token", "1234")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Type).To(Equal(clock.TypeOut))
		})

		It("toggles IN again after an OUT", func() {
			now := time.Now()
			repo.logs = append(repo.logs,
				&clock.ClockLog{EmployeeID: 7, Type: clock.TypeIn, Timestamp: now.Add(-2 * time.Hour)},
				&clock.ClockLog{EmployeeID: 7, Type: clock.TypeOut, Timestamp: now.Add(-time.Hour)},
			)

			result, err := service.Clock("device-token", "1234")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Type).To(Equal(clock.TypeIn))
		})

		It("computes hours after the append", func() {
			_, err := service.Clock("device-token", "1234")
			Expect(err).NotTo(HaveOccurred())
			Expect(hours.calls).To(Equal(1))
			Expect(repo.logs).To(HaveLen(1))
		})

		It("propagates identification failures without appending", func() {
			authn.err = internal.ErrInvalidPasscode

			_, err := service.Clock("device-token", "0000")
			Expect(err).To(MatchError(internal.ErrInvalidPasscode))
			Expect(repo.logs).To(BeEmpty())
		})

		It("propagates repository failures", func() {
			repo.appendErr = errors.New("db down")

			_, err := service.Clock("device-token", "1234")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ClockAction", func() {
		It("rejects IN while already clocked in", func() {
			repo.logs = append(repo.logs, &clock.ClockLog{EmployeeID: 7, Type: clock.TypeIn, Timestamp: time.Now().Add(-time.Hour)})

			_, err := service.ClockAction("device-token", "1234", "IN")
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
			Expect(repo.logs).To(HaveLen(1))
		})

		It("rejects OUT with no history", func() {
			_, err := service.ClockAction("device-token", "1234", "OUT")
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
			Expect(repo.logs).To(BeEmpty())
		})

		It("rejects OUT after an OUT", func() {
			now := time.Now()
			repo.logs = append(repo.logs,
				&clock.ClockLog{EmployeeID: 7, Type: clock.TypeIn, Timestamp: now.Add(-2 * time.Hour)},
				&clock.ClockLog{EmployeeID: 7, Type: clock.TypeOut, Timestamp: now.Add(-time.Hour)},
			)

			_, err := service.ClockAction("device-token", "1234", "OUT")
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
		})

		It("accepts a valid explicit OUT", func() {
			repo.logs = append(repo.logs, &clock.ClockLog{EmployeeID: 7, Type: clock.TypeIn, Timestamp: time.Now().Add(-time.Hour)})

			result, err := service.ClockAction("device-token", "1234", "OUT")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Type).To(Equal(clock.TypeOut))
			Expect(repo.logs).To(HaveLen(2))
		})

		It("rejects an unknown action without identifying", func() {
			_, err := service.ClockAction("device-token", "1234", "PAUSE")
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("GetStatus", func() {
		It("reports OUT with IN next when there is no history", func() {
			status, err := service.GetStatus("device-token", "1234")
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Status).To(Equal(clock.TypeOut))
			Expect(status.NextAction).To(Equal(clock.TypeIn))
			Expect(status.HoursToday).To(Equal(4.5))
		})

		It("reports IN with OUT next while clocked in", func() {
			repo.logs = append(repo.logs, &clock.ClockLog{EmployeeID: 7, Type: clock.TypeIn, Timestamp: time.Now().Add(-time.Hour)})

			status, err := service.GetStatus("device-token", "1234")
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Status).To(Equal(clock.TypeIn))
			Expect(status.NextAction).To(Equal(clock.TypeOut))
		})

		It("never appends a log", func() {
			_, err := service.GetStatus("device-token", "1234")
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.logs).To(BeEmpty())
		})
	})
})
