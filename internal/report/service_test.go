package report_test

import (
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/clock"
	"github.com/frahmantamala/timetracker/internal/employee"
	"github.com/frahmantamala/timetracker/internal/report"
)

type mockClockReader struct {
	logs []*clock.ClockLog
}

func (m *mockClockReader) LastLogBefore(employeeID int64, t time.Time) (*clock.ClockLog, error) {
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

func (m *mockClockReader) ListInWindow(employeeID int64, start, end time.Time) ([]*clock.ClockLog, error) {
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

func (m *mockClockReader) LastLog(employeeID int64) (*clock.ClockLog, error) {
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

type mockLister struct {
	employees []*employee.Employee
	history   map[int64][]*employee.PayHistory
}

func (m *mockLister) ListByProperty(propertyID int64) ([]*employee.Employee, error) {
	var out []*employee.Employee
	for _, e := range m.employees {
		if e.PropertyID == propertyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockLister) ListPayHistory(employeeID int64) ([]*employee.PayHistory, error) {
	return m.history[employeeID], nil
}

type mockResolver struct {
	keys map[int64][]string
}

func (m *mockResolver) ResolveForEmployee(propertyID, employeeID int64) ([]string, error) {
	return m.keys[employeeID], nil
}

var _ = Describe("ReportService", func() {
	var (
		clocks    *mockClockReader
		employees *mockLister
		resolver  *mockResolver
		service   *report.Service
		day       time.Time
	)

	BeforeEach(func() {
		day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
		clocks = &mockClockReader{}
		employees = &mockLister{history: map[int64][]*employee.PayHistory{}}
		resolver = &mockResolver{keys: map[int64][]string{}}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		service = report.NewService(clocks, employees, resolver, logger)
	})

	Describe("HoursForWindow", func() {
		It("rounds to two decimals", func() {
			clocks.logs = []*clock.ClockLog{
				{EmployeeID: 1, Type: clock.TypeIn, Timestamp: day.Add(9 * time.Hour)},
				{EmployeeID: 1, Type: clock.TypeOut, Timestamp: day.Add(9*time.Hour + 10*time.Minute)},
			}

			hours, err := service.HoursForWindow(1, day, day.Add(24*time.Hour))
			Expect(err).NotTo(HaveOccurred())
			Expect(hours).To(Equal(0.17))
		})

		It("returns zero for a degenerate window", func() {
			hours, err := service.HoursForWindow(1, day, day)
			Expect(err).NotTo(HaveOccurred())
			Expect(hours).To(BeZero())
		})
	})

	Describe("EmployeesWithHours", func() {
		It("builds one row per employee with hours, entries, pay history and modules", func() {
			employees.employees = []*employee.Employee{
				{ID: 1, PropertyID: 3, FirstName: "Alice", LastName: "Nguyen", Status: employee.StatusActive, PayType: employee.PayTypeHourly},
				{ID: 2, PropertyID: 3, FirstName: "Ben", LastName: "Ortiz", Status: employee.StatusActive, PayType: employee.PayTypeSalary},
			}
			employees.history[1] = []*employee.PayHistory{{EmployeeID: 1, PayType: employee.PayTypeHourly}}
			resolver.keys[1] = []string{"employee-dashboard", "timekeeping"}
			resolver.keys[2] = []string{"employee-dashboard"}
			clocks.logs = []*clock.ClockLog{
				{EmployeeID: 1, Type: clock.TypeIn, Timestamp: day.Add(9 * time.Hour)},
				{EmployeeID: 1, Type: clock.TypeOut, Timestamp: day.Add(12 * time.Hour)},
			}

			result, err := service.EmployeesWithHours(3, day, day.Add(24*time.Hour))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Employees).To(HaveLen(2))

			alice := result.Employees[0]
			Expect(alice.FirstName).To(Equal("Alice"))
			Expect(alice.Hours).To(Equal(3.0))
			Expect(alice.ClockedIn).To(BeFalse())
			Expect(alice.Entries).To(HaveLen(2))
			Expect(alice.PayHistory).To(HaveLen(1))
			Expect(alice.Modules).To(ContainElement("timekeeping"))

			ben := result.Employees[1]
			Expect(ben.Hours).To(BeZero())
			Expect(ben.Entries).To(BeEmpty())
		})

		It("marks employees with a trailing IN as clocked in", func() {
			employees.employees = []*employee.Employee{
				{ID: 1, PropertyID: 3, FirstName: "Alice", LastName: "Nguyen", Status: employee.StatusActive},
			}
			clocks.logs = []*clock.ClockLog{
				{EmployeeID: 1, Type: clock.TypeIn, Timestamp: day.Add(9 * time.Hour)},
			}

			result, err := service.EmployeesWithHours(3, day, day.Add(10*time.Hour))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Employees[0].ClockedIn).To(BeTrue())
			// open interval closed synthetically at the window end
			Expect(result.Employees[0].Hours).To(Equal(1.0))
		})

		It("rejects a missing range", func() {
			_, err := service.EmployeesWithHours(3, time.Time{}, day)
			Expect(err).To(MatchError(internal.ErrMissingDateRange))
		})

		It("rejects an inverted range", func() {
			_, err := service.EmployeesWithHours(3, day.Add(time.Hour), day)
			Expect(err).To(MatchError(internal.ErrInvalidDateRange))
		})
	})
})
