package subscription

// Subscription is the set of recipes an application declares for one update
// cycle. It is a value: building, batching and mapping subscriptions has no
// effect until the tracker reconciles the declared set.
type Subscription[T any] struct {
	recipes []Recipe[T]
}

// None returns an empty Subscription that will not produce any output.
func None[T any]() Subscription[T] {
	return Subscription[T]{}
}

// FromRecipe creates a Subscription from a single recipe.
func FromRecipe[T any](r Recipe[T]) Subscription[T] {
	return Subscription[T]{recipes: []Recipe[T]{r}}
}

// Batch merges the given subscriptions into one. Nesting flattens: the
// result holds the concatenation of every input's recipes in declaration
// order, and empty subscriptions contribute nothing.
func Batch[T any](subs ...Subscription[T]) Subscription[T] {
	var recipes []Recipe[T]
	for _, s := range subs {
		recipes = append(recipes, s.recipes...)
	}
	return Subscription[T]{recipes: recipes}
}

// Recipes returns the declared recipes in declaration order.
func (s Subscription[T]) Recipes() []Recipe[T] {
	return s.recipes
}

// Map transforms every output of the subscription with f.
//
// The mapper becomes part of each recipe's identity, so mapping the same
// source with different functions declares distinct subscriptions.
func Map[A, B any](s Subscription[A], f func(A) B) Subscription[B] {
	recipes := make([]Recipe[B], len(s.recipes))
	for i, r := range s.recipes {
		recipes[i] = &mapRecipe[A, B]{inner: r, f: f}
	}
	return Subscription[B]{recipes: recipes}
}

// With prepends a context value to the subscription. The value joins each
// recipe's identity and is paired with every output.
func With[V, T any](s Subscription[T], value V) Subscription[Tagged[V, T]] {
	recipes := make([]Recipe[Tagged[V, T]], len(s.recipes))
	for i, r := range s.recipes {
		recipes[i] = &withRecipe[V, T]{inner: r, value: value}
	}
	return Subscription[Tagged[V, T]]{recipes: recipes}
}

// Tagged pairs a context value with a subscription output.
type Tagged[V, T any] struct {
	Value  V
	Output T
}
