//go:build unit || !integration

package inmemory

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/registry"
	"github.com/genie-oss/genie/pkg/registry/registrytest"
)

type InMemoryTestSuite struct {
	registrytest.StoreSuite
	clock *clock.Mock
}

func TestInMemoryTestSuite(t *testing.T) {
	s := new(InMemoryTestSuite)
	s.NewStore = func() registry.Store {
		s.clock = clock.NewMock()
		return NewStore(WithClock(s.clock))
	}
	s.Advance = func(d time.Duration) { s.clock.Add(d) }
	suite.Run(t, s)
}
