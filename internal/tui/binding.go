package tui

// Binding is a read/write reference to state owned by the caller.
// Subscribers run synchronously on Set, in subscription order.
// Bindings are only touched from the Bubble Tea update loop and are not safe for concurrent use.
type Binding[T any] struct {
	value *T
	subs  []subscriber[T]
	next  int
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Bind wraps the caller's variable. A nil pointer gets a private zero value.
func Bind[T any](v *T) *Binding[T] {
	if v == nil {
		v = new(T)
	}
	return &Binding[T]{value: v}
}

func (b *Binding[T]) Get() T { return *b.value }

func (b *Binding[T]) Set(v T) {
	*b.value = v
	for _, s := range b.subs {
		s.fn(v)
	}
}

// Subscribe registers fn for changes and returns a func that removes it.
func (b *Binding[T]) Subscribe(fn func(T)) (cancel func()) {
	id := b.next
	b.next++
	b.subs = append(b.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}
