package game

import "fmt"

// CanPurchase is the single prerequisite predicate every purchase path goes
// through: property prerequisites and tier upgrades alike, so the DAG check
// cannot drift between systems.
func CanPurchase(st *State, requires []string, cost float64) error {
	for _, req := range requires {
		if !OwnsProperty(st, req) {
			return fmt.Errorf("%w: requires %s", ErrPrecondition, req)
		}
	}
	if st.Cash < cost {
		return fmt.Errorf("%w: need %.2f", ErrInsufficientFunds, cost)
	}
	return nil
}

func OwnsProperty(st *State, typ string) bool {
	for _, p := range st.Properties {
		if p.Type == typ {
			return true
		}
	}
	return false
}

// BuyProperty appends an immutable property unit: cost, income rate and
// control contribution are fixed at acquisition.
func BuyProperty(st *State, now int64, typ string) (*Property, error) {
	spec, ok := propertySpec(typ)
	if !ok {
		return nil, fmt.Errorf("%w: property type %q", ErrNotFound, typ)
	}
	if !st.Unlocks.Properties {
		return nil, fmt.Errorf("%w: properties", ErrLocked)
	}
	if OwnsProperty(st, typ) {
		return nil, fmt.Errorf("%w: already owned", ErrPrecondition)
	}
	if err := CanPurchase(st, spec.Requires, spec.Cost); err != nil {
		return nil, err
	}
	st.Cash -= spec.Cost
	p := Property{
		Type:        spec.Type,
		Name:        spec.Name,
		Cost:        spec.Cost,
		IncomeRate:  spec.IncomeRate,
		Control:     spec.Control,
		PurchasedAt: now,
	}
	st.Properties = append(st.Properties, p)
	return &st.Properties[len(st.Properties)-1], nil
}

// AvailableProperties lists unowned catalog entries whose prerequisites are
// already met.
func AvailableProperties(st *State) []PropertySpec {
	out := []PropertySpec{}
	for _, spec := range propertyCatalog {
		if OwnsProperty(st, spec.Type) {
			continue
		}
		met := true
		for _, req := range spec.Requires {
			if !OwnsProperty(st, req) {
				met = false
				break
			}
		}
		if met {
			out = append(out, spec)
		}
	}
	return out
}

// NextUpgradeCost reports what the next upgrade purchase would cost: the
// next gear level within the current tier, or entry into the next tier once
// gear is maxed. Returns false when fully upgraded.
func NextUpgradeCost(st *State) (cost float64, tierJump bool, ok bool) {
	spec := tierSpec(st.Tier)
	if st.GearLevel < spec.MaxGear {
		return spec.GearCost * float64(st.GearLevel+1), false, true
	}
	if st.Tier+1 < len(tierCatalog) {
		return tierCatalog[st.Tier+1].EntryCost, true, true
	}
	return 0, false, false
}

// BuyUpgrade advances the studio one step. Already-written songs keep their
// baked rates; only songs completed afterwards see the new multiplier.
func BuyUpgrade(st *State) error {
	cost, tierJump, ok := NextUpgradeCost(st)
	if !ok {
		return fmt.Errorf("%w: studio fully upgraded", ErrPrecondition)
	}
	if err := CanPurchase(st, nil, cost); err != nil {
		return err
	}
	st.Cash -= cost
	if tierJump {
		st.Tier++
		st.GearLevel = 0
	} else {
		st.GearLevel++
	}
	return nil
}
