package authorization

import (
	"time"

	"github.com/brightline/portald/pkg/acl"
	"github.com/brightline/portald/pkg/directory"
	"github.com/brightline/portald/pkg/hierarchy"
	"github.com/brightline/portald/pkg/identity"
	"github.com/brightline/portald/pkg/tiers"
	"github.com/brightline/portald/pkg/titles"
	"github.com/brightline/portald/pkg/workflows"
)

// TestFixture bundles a Resolver over in-memory sources for tests. The
// exported sources can be mutated between resolutions to model directory
// refreshes, ACL outages, and configuration changes.
type TestFixture struct {
	Resolver  *Resolver
	Directory *directory.MemorySource
	Hierarchy *hierarchy.MemorySource
	ACL       *acl.MemorySource
}

// TestOptions configures NewTestFixture
type TestOptions struct {
	Domain            string
	Aliases           map[string]string
	Tiers             []tiers.Tier
	TitleRules        []titles.Rule
	SchoolsByLocation map[string]string
	PositionRoles     map[string]workflows.PositionRole
	OnboardingRoles   map[string]workflows.OnboardingRole
	CacheDuration     time.Duration
}

// NewTestFixture builds a Resolver wired to fresh memory sources
func NewTestFixture(opts TestOptions) (*TestFixture, error) {
	if opts.Domain == "" {
		opts.Domain = "brightlineschools.org"
	}

	registry, err := tiers.NewRegistry(opts.Tiers)
	if err != nil {
		return nil, err
	}

	fixture := &TestFixture{
		Directory: directory.NewMemorySource(),
		Hierarchy: hierarchy.NewMemorySource(),
		ACL:       acl.NewMemorySource(),
	}

	resolver, err := NewResolver(Config{
		Identity:          identity.NewResolver(opts.Domain, opts.Aliases),
		Directory:         directory.NewRepository(fixture.Directory, opts.CacheDuration),
		Hierarchy:         hierarchy.NewIndex(fixture.Hierarchy, opts.CacheDuration),
		Tiers:             registry,
		Titles:            titles.NewClassifier(opts.TitleRules),
		ACL:               acl.NewStore(fixture.ACL),
		Workflows:         workflows.NewRegistry(opts.PositionRoles, opts.OnboardingRoles),
		SchoolsByLocation: opts.SchoolsByLocation,
	})
	if err != nil {
		return nil, err
	}

	fixture.Resolver = resolver
	return fixture, nil
}

// AddActiveStaff inserts an active staff record and, when supervisor is
// non-empty, the matching org edge
func (f *TestFixture) AddActiveStaff(email, jobTitle, location, supervisor string) {
	f.Directory.AddStaff(&directory.StaffRecord{
		Email:           email,
		JobTitle:        jobTitle,
		Location:        location,
		Status:          directory.StatusActive,
		SupervisorEmail: supervisor,
	})
	if supervisor != "" {
		f.Hierarchy.AddReport(supervisor, email)
	}
}
