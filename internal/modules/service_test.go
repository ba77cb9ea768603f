package modules_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/employee"
	"github.com/frahmantamala/timetracker/internal/modules"
)

func TestModules(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Modules Service Suite")
}

type mockModuleRepo struct {
	propertyKeys map[int64][]string
	employeeKeys map[int64][]string
}

func newMockModuleRepo() *mockModuleRepo {
	return &mockModuleRepo{
		propertyKeys: make(map[int64][]string),
		employeeKeys: make(map[int64][]string),
	}
}

func (m *mockModuleRepo) ListPropertyModuleKeys(propertyID int64) ([]string, error) {
	return m.propertyKeys[propertyID], nil
}

func (m *mockModuleRepo) ListEmployeeModuleKeys(employeeID int64) ([]string, error) {
	return m.employeeKeys[employeeID], nil
}

func (m *mockModuleRepo) ReplacePropertyModules(propertyID int64, keys []string) error {
	m.propertyKeys[propertyID] = keys

	// prune employee grants outside the new set, as the real store does
	allowed := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		allowed[k] = struct{}{}
	}
	for id, empKeys := range m.employeeKeys {
		kept := empKeys[:0]
		for _, k := range empKeys {
			if _, ok := allowed[k]; ok {
				kept = append(kept, k)
			}
		}
		m.employeeKeys[id] = kept
	}
	return nil
}

func (m *mockModuleRepo) ReplaceEmployeeModules(employeeID int64, keys []string) error {
	m.employeeKeys[employeeID] = keys
	return nil
}

func (m *mockModuleRepo) EnsurePropertyModules(propertyID int64, keys []string) error {
	m.propertyKeys[propertyID] = append(m.propertyKeys[propertyID], keys...)
	return nil
}

func (m *mockModuleRepo) EnsureEmployeeModules(employeeID int64, keys []string) error {
	m.employeeKeys[employeeID] = append(m.employeeKeys[employeeID], keys...)
	return nil
}

type mockEmployeeDirectory struct {
	// employee id to owning property id
	properties map[int64]int64
}

func (m *mockEmployeeDirectory) GetForProperty(propertyID, employeeID int64) (*employee.Employee, error) {
	if m.properties[employeeID] != propertyID {
		return nil, nil
	}
	return &employee.Employee{ID: employeeID, PropertyID: propertyID}, nil
}

var _ = Describe("ModulesService", func() {
	var (
		repo    *mockModuleRepo
		staff   *mockEmployeeDirectory
		service *modules.Service
	)

	BeforeEach(func() {
		repo = newMockModuleRepo()
		staff = &mockEmployeeDirectory{properties: map[int64]int64{10: 1}}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		service = modules.NewService(repo, staff, logger)
	})

	Describe("ResolveForProperty", func() {
		It("defaults to the full module set when no rows exist", func() {
			keys, err := service.ResolveForProperty(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(ConsistOf(modules.AllModuleKeys))
		})

		It("returns the explicit selection with the base module included", func() {
			repo.propertyKeys[1] = []string{modules.KeyTimekeeping}

			keys, err := service.ResolveForProperty(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(ConsistOf(modules.KeyEmployeeDashboard, modules.KeyTimekeeping))
		})

		It("drops unknown keys from stored rows", func() {
			repo.propertyKeys[1] = []string{modules.KeyTasks, "bogus-module"}

			keys, err := service.ResolveForProperty(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(ConsistOf(modules.KeyEmployeeDashboard, modules.KeyTasks))
		})
	})

	Describe("ResolveForEmployee", func() {
		It("intersects employee selection with the property set", func() {
			repo.propertyKeys[1] = []string{modules.KeyTimekeeping, modules.KeyReports}
			repo.employeeKeys[10] = []string{modules.KeyTimekeeping, modules.KeyTasks}

			keys, err := service.ResolveForEmployee(1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(ConsistOf(modules.KeyEmployeeDashboard, modules.KeyTimekeeping))
		})

		It("always includes the base module even with an empty selection", func() {
			repo.propertyKeys[1] = []string{modules.KeyTimekeeping}

			keys, err := service.ResolveForEmployee(1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(ConsistOf(modules.KeyEmployeeDashboard))
		})

		It("grants everything selected when the property has the default set", func() {
			repo.employeeKeys[10] = []string{modules.KeyTeam, modules.KeySettings}

			keys, err := service.ResolveForEmployee(1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(ConsistOf(modules.KeyEmployeeDashboard, modules.KeyTeam, modules.KeySettings))
		})

		It("returns not found for another property's employee", func() {
			staff.properties[42] = 2
			repo.employeeKeys[42] = []string{modules.KeyTimekeeping}

			_, err := service.ResolveForEmployee(1, 42)
			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})
	})

	Describe("UpdatePropertyModules", func() {
		It("normalizes and stores the new set", func() {
			keys, err := service.UpdatePropertyModules(1, []string{modules.KeyReports, modules.KeyReports, "bogus"})
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(ConsistOf(modules.KeyEmployeeDashboard, modules.KeyReports))
			Expect(repo.propertyKeys[1]).To(ConsistOf(modules.KeyEmployeeDashboard, modules.KeyReports))
		})

		It("prunes employee grants that fall outside the new set", func() {
			repo.propertyKeys[1] = modules.AllModuleKeys
			repo.employeeKeys[10] = []string{modules.KeyTimekeeping, modules.KeyReports}

			_, err := service.UpdatePropertyModules(1, []string{modules.KeyTimekeeping})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.employeeKeys[10]).To(ConsistOf(modules.KeyTimekeeping))
		})

		It("keeps the base module even when asked to remove everything", func() {
			keys, err := service.UpdatePropertyModules(1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(ConsistOf(modules.KeyEmployeeDashboard))
		})
	})

	Describe("UpdateEmployeeModules", func() {
		It("silently drops keys the property has not enabled", func() {
			repo.propertyKeys[1] = []string{modules.KeyTimekeeping}

			keys, err := service.UpdateEmployeeModules(1, 10, []string{modules.KeyTimekeeping, modules.KeyReports})
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(ConsistOf(modules.KeyEmployeeDashboard, modules.KeyTimekeeping))
			Expect(repo.employeeKeys[10]).NotTo(ContainElement(modules.KeyReports))
		})

		It("refuses to write grants for another property's employee", func() {
			staff.properties[42] = 2

			_, err := service.UpdateEmployeeModules(1, 42, []string{modules.KeyTimekeeping})
			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
			Expect(repo.employeeKeys[42]).To(BeEmpty())
		})
	})
})
