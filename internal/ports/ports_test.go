package ports_test

import (
	"testing"

	"github.com/crakhack/crakhack-web/internal/mocks"
	"github.com/crakhack/crakhack-web/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.GraphQLClient = (*mocks.MockGraphQLClient)(nil)
	var _ ports.AnalyticsSource = (*mocks.MockAnalyticsSource)(nil)
	var _ ports.StorageSource = (*mocks.MockStorageSource)(nil)
	var _ ports.SummaryCache = (*mocks.MockSummaryCache)(nil)
}
