package usecase

import (
	"github.com/phenrril/quotedesk/internal/domain"
)

type CartUC struct{}

func (uc *CartUC) Load(store domain.SessionStore) (domain.Cart, error) {
	return store.LoadCart()
}

// Add merges or appends item and persists the cart as the last step.
func (uc *CartUC) Add(store domain.SessionStore, item domain.LineItem) (domain.Cart, error) {
	cart, err := store.LoadCart()
	if err != nil {
		return cart, err
	}
	if err := cart.Add(item); err != nil {
		return cart, err
	}
	return cart, store.SaveCart(cart)
}

// Remove is a no-op when index is out of range.
func (uc *CartUC) Remove(store domain.SessionStore, index int) (domain.Cart, error) {
	cart, err := store.LoadCart()
	if err != nil {
		return cart, err
	}
	if err := cart.Remove(index); err != nil {
		return cart, err
	}
	return cart, store.SaveCart(cart)
}

func (uc *CartUC) Clear(store domain.SessionStore) error {
	var cart domain.Cart
	return store.SaveCart(cart)
}

func (uc *CartUC) View(store domain.SessionStore) (domain.CartView, error) {
	cart, err := store.LoadCart()
	if err != nil {
		return domain.Cart{}.View(), err
	}
	return cart.View(), nil
}
