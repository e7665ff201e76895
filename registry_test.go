package wirebox_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorgan/wirebox"
	"github.com/jmorgan/wirebox/internal/testtypes"
	"github.com/jmorgan/wirebox/internal/testutils"
)

func Test_NewRegistry(t *testing.T) {
	t.Run("no options", func(t *testing.T) {
		r, err := wirebox.NewRegistry()
		assert.NotNil(t, r)
		assert.NoError(t, err)
	})

	t.Run("with provider", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithProvider(testtypes.NewInterfaceA),
		)
		assert.NotNil(t, r)
		assert.NoError(t, err)

		has := r.Contains(testtypes.TypeInterfaceA)
		assert.True(t, has)
	})

	t.Run("with value", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithValue(&testtypes.StructA{}),
		)
		assert.NotNil(t, r)
		assert.NoError(t, err)

		has := r.Contains(testtypes.TypeStructAPtr)
		assert.True(t, has)
	})

	t.Run("with nil provider", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithProvider(nil),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with provider: fn is nil")
	})

	t.Run("with provider not a function", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithProvider(1234),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with provider int: fn must be a function")
	})

	t.Run("with provider invalid return", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithProvider(func() {}),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with provider func(): constructor function must return T or (T, error)")
	})

	t.Run("with variadic provider", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithProvider(func(nums ...int) int { return 0 }),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with provider func(...int) int: variadic constructor functions are not supported")
	})

	t.Run("with provider of special type", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithProvider(func() context.Context { return context.Background() }),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with provider func() context.Context: invalid provided type context.Context")
	})

	t.Run("with nil value", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithValue(nil),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with value: value is nil")
	})

	t.Run("with option as value", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithValue(wirebox.WithTag("tag")),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with value wirebox.tagOption: unexpected ProvideOption as value")
	})

	t.Run("with function as value", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithValue(testtypes.NewInterfaceA),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with value func() testtypes.InterfaceA: use WithProvider to register a constructor function")
	})

	t.Run("with lazy value taking arguments", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithLazy(func(n int) int { return n }),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with lazy value func(int) int: lazy value function must not take arguments")
	})

	t.Run("with lazy value not a function", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithLazy(1234),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with lazy value int: fn must be a function")
	})

	t.Run("provider alias not assignable", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithProvider(testtypes.NewInterfaceA, wirebox.As[*testtypes.StructA]()),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with provider func() testtypes.InterfaceA: as *testtypes.StructA: type testtypes.InterfaceA not assignable to *testtypes.StructA")
	})

	t.Run("value alias not assignable", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithValue(&testtypes.StructA{}, wirebox.As[testtypes.InterfaceB]()),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with value *testtypes.StructA: as testtypes.InterfaceB: type *testtypes.StructA not assignable to testtypes.InterfaceB")
	})

	t.Run("with tagged not found", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithProvider(testtypes.NewInterfaceA,
				wirebox.WithTagged[testtypes.InterfaceB]("tag"),
			),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with provider func() testtypes.InterfaceA: with tagged testtypes.InterfaceB: argument not found")
	})

	t.Run("duplicate value", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithValue(23),
			wirebox.WithValue(42),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with value int: duplicate registration for int")
		assert.ErrorIs(t, err, wirebox.ErrDuplicateRegistration)
	})

	t.Run("duplicate provider", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithProvider(testtypes.NewInterfaceA),
			wirebox.WithProvider(testtypes.NewInterfaceA),
		)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "wirebox.NewRegistry: with provider func() testtypes.InterfaceA: duplicate registration for testtypes.InterfaceA")
	})

	t.Run("duplicate with override", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithValue(23),
			wirebox.WithValue(42, wirebox.WithOverride()),
		)
		require.NoError(t, err)

		got, err := wirebox.Resolve[int](context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("same type different tags", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithValue(23, wirebox.WithTag("a")),
			wirebox.WithValue(42, wirebox.WithTag("b")),
		)
		require.NoError(t, err)

		got, err := wirebox.Resolve[int](context.Background(), r, wirebox.WithTag("b"))
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("with module", func(t *testing.T) {
		mod := wirebox.Module{
			wirebox.WithProvider(testtypes.NewInterfaceA),
			wirebox.WithProvider(testtypes.NewInterfaceB),
		}

		r, err := wirebox.NewRegistry(
			wirebox.WithModule(mod),
		)
		require.NoError(t, err)

		assert.True(t, r.Contains(testtypes.TypeInterfaceA))
		assert.True(t, r.Contains(testtypes.TypeInterfaceB))
	})

	t.Run("with nested module", func(t *testing.T) {
		inner := wirebox.Module{
			wirebox.WithProvider(testtypes.NewInterfaceA),
		}
		outer := wirebox.Module{
			wirebox.WithModule(inner),
			wirebox.WithProvider(testtypes.NewInterfaceB),
		}

		r, err := wirebox.NewRegistry(
			wirebox.WithModule(outer),
		)
		require.NoError(t, err)

		assert.True(t, r.Contains(testtypes.TypeInterfaceA))
		assert.True(t, r.Contains(testtypes.TypeInterfaceB))

		b, err := wirebox.Resolve[testtypes.InterfaceB](context.Background(), r)
		require.NoError(t, err)
		assert.NotNil(t, b)
	})

	t.Run("with override module", func(t *testing.T) {
		base := wirebox.Module{
			wirebox.WithValue("hi"),
			wirebox.WithValue(23),
		}
		overrides := wirebox.Module{
			wirebox.WithValue(42, wirebox.WithOverride()),
		}

		r, err := wirebox.NewRegistry(
			wirebox.WithModule(base),
			wirebox.WithModule(overrides),
		)
		require.NoError(t, err)

		got, err := wirebox.Resolve[int](context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, 42, got)

		str, err := wirebox.Resolve[string](context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, "hi", str)
	})
}

func Test_Registry_Contains(t *testing.T) {
	t.Run("registered", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithProvider(testtypes.NewInterfaceA),
		)
		require.NoError(t, err)

		assert.True(t, r.Contains(testtypes.TypeInterfaceA))
		assert.False(t, r.Contains(testtypes.TypeInterfaceB))
	})

	t.Run("with tag", func(t *testing.T) {
		r, err := wirebox.NewRegistry(
			wirebox.WithValue(&testtypes.StructA{}, wirebox.WithTag("tag")),
		)
		require.NoError(t, err)

		assert.True(t, r.Contains(testtypes.TypeStructAPtr, wirebox.WithTag("tag")))
		assert.False(t, r.Contains(testtypes.TypeStructAPtr))
	})

	t.Run("from parent scope", func(t *testing.T) {
		parent, err := wirebox.NewRegistry(
			wirebox.WithProvider(testtypes.NewInterfaceA),
		)
		require.NoError(t, err)

		scope, err := parent.NewScope()
		require.NoError(t, err)

		assert.True(t, scope.Contains(testtypes.TypeInterfaceA))
	})
}

func Test_Registry_NewScope(t *testing.T) {
	ctx := context.Background()

	t.Run("inherits parent registrations", func(t *testing.T) {
		parent, err := wirebox.NewRegistry(
			wirebox.WithValue(23),
		)
		require.NoError(t, err)

		scope, err := parent.NewScope()
		require.NoError(t, err)

		got, err := wirebox.Resolve[int](ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, 23, got)
	})

	t.Run("shadows parent registration", func(t *testing.T) {
		parent, err := wirebox.NewRegistry(
			wirebox.WithValue(23),
		)
		require.NoError(t, err)

		scope, err := parent.NewScope(
			wirebox.WithValue(42),
		)
		require.NoError(t, err)

		got, err := wirebox.Resolve[int](ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, 42, got)

		// The parent is unaffected
		got, err = wirebox.Resolve[int](ctx, parent)
		require.NoError(t, err)
		assert.Equal(t, 23, got)
	})

	t.Run("duplicate within scope", func(t *testing.T) {
		parent, err := wirebox.NewRegistry()
		require.NoError(t, err)

		scope, err := parent.NewScope(
			wirebox.WithValue(23),
			wirebox.WithValue(42),
		)
		testutils.LogError(t, err)

		assert.Nil(t, scope)
		assert.EqualError(t, err, "wirebox.Registry.NewScope: with value int: duplicate registration for int")
	})

	t.Run("parent provider constructed once across sibling scopes", func(t *testing.T) {
		factory := &testtypes.Factory{}

		parent, err := wirebox.NewRegistry(
			wirebox.WithProvider(factory.NewInterfaceA),
		)
		require.NoError(t, err)

		scope1, err := parent.NewScope()
		require.NoError(t, err)
		scope2, err := parent.NewScope()
		require.NoError(t, err)

		a1, err := wirebox.Resolve[testtypes.InterfaceA](ctx, scope1)
		require.NoError(t, err)
		a2, err := wirebox.Resolve[testtypes.InterfaceA](ctx, scope2)
		require.NoError(t, err)

		assert.Same(t, a1, a2)
		assert.Equal(t, 1, factory.Count())
	})

	t.Run("scoped provider depends on parent value", func(t *testing.T) {
		parent, err := wirebox.NewRegistry(
			wirebox.WithValue(23),
		)
		require.NoError(t, err)

		scope, err := parent.NewScope(
			wirebox.WithProvider(func(n int) *testtypes.StructA {
				return &testtypes.StructA{Tag: n}
			}),
		)
		require.NoError(t, err)

		a, err := wirebox.Resolve[*testtypes.StructA](ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, 23, a.Tag)
	})

	t.Run("parent provider resolves dependencies from its own scope", func(t *testing.T) {
		parent, err := wirebox.NewRegistry(
			wirebox.WithValue(23),
			wirebox.WithProvider(func(n int) *testtypes.StructA {
				return &testtypes.StructA{Tag: n}
			}),
		)
		require.NoError(t, err)

		// Shadowing int in the child must not leak into the parent-registered
		// provider: its memoized value cannot depend on which scope resolved
		// it first.
		scope, err := parent.NewScope(
			wirebox.WithValue(42),
		)
		require.NoError(t, err)

		a, err := wirebox.Resolve[*testtypes.StructA](ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, 23, a.Tag)
	})
}
