// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes one function field per interface method. A nil field
// falls back to a simple default behavior, so tests only override the calls
// they care about:
//
//	import "github.com/phrazzld/thrones-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    jwtService := &mocks.MockJWTService{
//	        GenerateTokenFn: func(ctx context.Context, userID int64) (string, error) {
//	            return "mocked-token", nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
//
// When adding a new mock to this package, name the file after the interface
// being mocked and give it a function field per method.
package mocks
