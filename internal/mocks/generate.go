// Package mocks provides gomock implementations of the ports in internal/ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	src := mocks.NewMockAnalyticsSource(ctrl)
//	src.EXPECT().IntrospectDimensions(gomock.Any()).Return([]string{"datetimeHour"}, nil)
package mocks

// GraphQLClient: Do
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=graphql_client_mock.go github.com/crakhack/crakhack-web/internal/ports GraphQLClient

// AnalyticsSource: IntrospectDimensions, ProbeField, FetchWindow
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=analytics_source_mock.go github.com/crakhack/crakhack-web/internal/ports AnalyticsSource

// StorageSource: FetchStorage
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=storage_source_mock.go github.com/crakhack/crakhack-web/internal/ports StorageSource

// SummaryCache: Get, Set
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=summary_cache_mock.go github.com/crakhack/crakhack-web/internal/ports SummaryCache
