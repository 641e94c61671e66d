package cards

import "strings"

// Stack represents multiple cards
type Stack []Card

// NewStack creates a new stack with the given cards
func NewStack(cards ...Card) Stack {
	return cards
}

// String returns the stack as space-separated card shorthands
func (s Stack) String() string {
	parts := make([]string, len(s))
	for i, card := range s {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

// Contains checks whether the stack holds the given card
func (s Stack) Contains(card Card) bool {
	for _, c := range s {
		if c.Equals(card) {
			return true
		}
	}
	return false
}

// StackFromStrings builds a stack from shorthand notations like "As" or "10h"
func StackFromStrings(notations ...string) (Stack, error) {
	stack := make(Stack, 0, len(notations))
	for _, notation := range notations {
		card, err := CardFromString(notation)
		if err != nil {
			return nil, err
		}
		stack = append(stack, card)
	}
	return stack, nil
}
