package model

// ModuleStatus marks a navigation module as served by this API or as a
// named placeholder for future work.
type ModuleStatus string

const (
	ModuleImplemented ModuleStatus = "implemented"
	ModulePlanned     ModuleStatus = "planned"
)

// Module is one entry of the panel navigation.
type Module struct {
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Status      ModuleStatus `json:"status"`
	Description string       `json:"description"`
	NextSteps   []string     `json:"next_steps,omitempty"`
}

// plannedSteps mirrors the build checklist shown on every stub page.
func plannedSteps() []string {
	return []string{
		"add the resource schema to the catalog",
		"let EnsureSchema create its table",
		"register it with the generic resource handler",
	}
}

// Modules lists the panel navigation: the served modules first, then the
// placeholders prepared for implementation.
func Modules() []Module {
	return []Module{
		{Name: "Dashboard", Slug: "dashboard", Status: ModuleImplemented, Description: "record counts overview"},
		{Name: "Patients", Slug: "patients", Status: ModuleImplemented, Description: "patient registry CRUD"},
		{Name: "Doctors", Slug: "doctors", Status: ModuleImplemented, Description: "doctor directory CRUD"},
		{Name: "Staff", Slug: "staff", Status: ModuleImplemented, Description: "staff roster CRUD"},
		{Name: "Appointments", Slug: "appointments", Status: ModulePlanned, Description: "module prepared for implementation", NextSteps: plannedSteps()},
		{Name: "Lab & Investigations", Slug: "lab", Status: ModulePlanned, Description: "module prepared for implementation", NextSteps: plannedSteps()},
		{Name: "Pharmacy Inventory", Slug: "pharmacy", Status: ModulePlanned, Description: "module prepared for implementation", NextSteps: plannedSteps()},
		{Name: "Departments", Slug: "departments", Status: ModulePlanned, Description: "module prepared for implementation", NextSteps: plannedSteps()},
		{Name: "Reports", Slug: "reports", Status: ModulePlanned, Description: "module prepared for implementation", NextSteps: plannedSteps()},
	}
}

// ModuleBySlug finds a navigation module by its slug.
func ModuleBySlug(slug string) (Module, bool) {
	for _, m := range Modules() {
		if m.Slug == slug {
			return m, true
		}
	}
	return Module{}, false
}

// DashboardCounts carries the three read-only totals on the landing page.
type DashboardCounts struct {
	Patients int64 `json:"patients"`
	Doctors  int64 `json:"doctors"`
	Staff    int64 `json:"staff"`
}
