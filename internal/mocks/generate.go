// Package mocks provides mock implementations for testing the auth services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the port interfaces. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockUsers := mocks.NewMockUserStore(ctrl)
//	mockUsers.EXPECT().ExistsByUsername(gomock.Any(), "alice").Return(false, nil)
package mocks

// Generate mock for UserStore interface from internal/ports package.
// This creates MockUserStore with methods for all UserStore interface methods:
// FindByUsername, ExistsByUsername, ExistsByEmail, Create
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_store_mock.go github.com/target/shop-auth-api/internal/ports UserStore

// Generate mock for RoleStore interface from internal/ports package.
// This creates MockRoleStore with methods for all RoleStore interface methods:
// FindByName
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=role_store_mock.go github.com/target/shop-auth-api/internal/ports RoleStore
