package sim

import (
	"errors"
	"testing"
)

func TestLoadDefaultResearchRegistry(t *testing.T) {
	c, err := LoadDefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	reg, err := LoadDefaultResearchRegistry(c)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	n, err := reg.Node("SF_STRIKE_FUNDAMENTALS_I")
	if err != nil {
		t.Fatalf("canonical node missing: %v", err)
	}
	if n.HostFacility != "strike_lab" || len(n.Unlocks) != 1 || n.Unlocks[0] != "Spearling" {
		t.Fatalf("SF_STRIKE_FUNDAMENTALS_I content wrong: %+v", n)
	}
	if gates := reg.UnlockGates("Spearling"); len(gates) != 1 || gates[0] != "SF_STRIKE_FUNDAMENTALS_I" {
		t.Fatalf("Spearling gates wrong: %v", gates)
	}

	// Tier-3 capital node chains through both the line and strike trees.
	cap1, err := reg.Node("SF_CAPITAL_COMMISSION_I")
	if err != nil {
		t.Fatalf("capital node missing: %v", err)
	}
	if len(cap1.Prerequisites) != 2 {
		t.Fatalf("capital node prerequisites %v", cap1.Prerequisites)
	}
}

func TestParseBonusScope(t *testing.T) {
	for in, want := range map[string]BonusScope{
		"ship_class": ScopeShipClass,
		"all_ships":  ScopeAllShips,
		"base":       ScopeBase,
		"facility":   ScopeFacility,
		"economy":    ScopeEconomy,
	} {
		got, err := ParseBonusScope(in)
		if err != nil || got != want {
			t.Fatalf("ParseBonusScope(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBonusScope("fleet"); !errors.Is(err, ErrBadContent) {
		t.Fatalf("unknown scope should be ErrBadContent, got %v", err)
	}
}

func TestEmbeddedContent_RegistryNodesCarryBonuses(t *testing.T) {
	c, _ := LoadDefaultCatalog()
	reg, err := LoadDefaultResearchRegistry(c)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	n, err := reg.Node("SF_REACTIVE_PLATING_I")
	if err != nil {
		t.Fatalf("plating node missing: %v", err)
	}
	if len(n.Bonuses) != 1 || n.Bonuses[0].Scope != ScopeAllShips || n.Bonuses[0].Amount != 0.10 {
		t.Fatalf("plating bonus wrong: %+v", n.Bonuses)
	}
}
