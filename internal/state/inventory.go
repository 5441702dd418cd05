package state

// InventorySlots is the size of a player inventory window, hotbar included.
const InventorySlots = 46

// HotbarStart is the index of the first hotbar slot.
const HotbarStart = 36

// ItemKind names an item type.
type ItemKind string

const (
	ItemAir       ItemKind = ""
	ItemIronSword ItemKind = "iron_sword"
)

// ItemStack stores a quantity of a single item kind.
type ItemStack struct {
	Kind  ItemKind `json:"kind"`
	Count uint8    `json:"count"`
}

// Empty reports whether the stack holds nothing.
func (s ItemStack) Empty() bool {
	return s.Kind == ItemAir || s.Count == 0
}

// Inventory is a fixed slot array.
type Inventory struct {
	Slots [InventorySlots]ItemStack
}

// Slot returns the stack in the given slot, or an empty stack when out of range.
func (inv *Inventory) Slot(slot int) ItemStack {
	if inv == nil || slot < 0 || slot >= InventorySlots {
		return ItemStack{}
	}
	return inv.Slots[slot]
}

// SetSlot replaces the stack in the given slot. Out of range writes are ignored.
func (inv *Inventory) SetSlot(slot int, stack ItemStack) bool {
	if inv == nil || slot < 0 || slot >= InventorySlots {
		return false
	}
	if stack.Count == 0 {
		stack = ItemStack{}
	}
	inv.Slots[slot] = stack
	return true
}

// Clear empties every slot.
func (inv *Inventory) Clear() {
	if inv == nil {
		return
	}
	for i := range inv.Slots {
		inv.Slots[i] = ItemStack{}
	}
}

// Count returns the number of occupied slots.
func (inv *Inventory) Count() int {
	if inv == nil {
		return 0
	}
	n := 0
	for _, stack := range inv.Slots {
		if !stack.Empty() {
			n++
		}
	}
	return n
}
