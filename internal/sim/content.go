package sim

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var contentFS embed.FS

// YAML document shapes. These mirror the content files one-to-one and are
// converted into the validated in-memory types by the Load* functions.

type shipDoc struct {
	Ships []struct {
		Name         string  `yaml:"name"`
		Class        string  `yaml:"class"`
		Role         string  `yaml:"role"`
		Cost         float64 `yaml:"cost"`
		BuildTime    float64 `yaml:"build_time"`
		Health       float64 `yaml:"health"`
		Armor        float64 `yaml:"armor"`
		Shields      float64 `yaml:"shields"`
		Energy       float64 `yaml:"energy"`
		EnergyRegen  float64 `yaml:"energy_regen"`
		FlightSpeed  float64 `yaml:"flight_speed"`
		VisualRange  float64 `yaml:"visual_range"`
		RadarRange   float64 `yaml:"radar_range"`
		FiringRange  float64 `yaml:"firing_range"`
		WeaponDamage float64 `yaml:"weapon_damage"`
	} `yaml:"ships"`
}

type facilityDoc struct {
	Facilities []struct {
		Type      string  `yaml:"type"`
		Cost      float64 `yaml:"cost"`
		BuildTime float64 `yaml:"build_time"`
		Health    float64 `yaml:"health"`
		Shields   float64 `yaml:"shields"`
	} `yaml:"facilities"`
}

type researchDoc struct {
	Nodes []struct {
		ID            string   `yaml:"id"`
		Name          string   `yaml:"name"`
		Tree          string   `yaml:"tree"`
		Tier          int      `yaml:"tier"`
		HostFacility  string   `yaml:"host_facility"`
		Cost          float64  `yaml:"cost"`
		Time          float64  `yaml:"time"`
		Prerequisites []string `yaml:"prerequisites"`
		Unlocks       []string `yaml:"unlocks"`
		Bonuses       []struct {
			Scope       string  `yaml:"scope"`
			Target      string  `yaml:"target"`
			Attribute   string  `yaml:"attribute"`
			Amount      float64 `yaml:"amount"`
			Description string  `yaml:"description"`
		} `yaml:"bonuses"`
		Description string `yaml:"description"`
	} `yaml:"nodes"`
}

// LoadDefaultCatalog builds the ship/facility catalog from the embedded
// content files.
func LoadDefaultCatalog() (*Catalog, error) {
	var sd shipDoc
	if err := readYAML("content/ships.yaml", &sd); err != nil {
		return nil, err
	}
	var fd facilityDoc
	if err := readYAML("content/facilities.yaml", &fd); err != nil {
		return nil, err
	}

	ships := make([]ShipDefinition, 0, len(sd.Ships))
	for _, s := range sd.Ships {
		class, err := ParseShipClass(s.Class)
		if err != nil {
			return nil, fmt.Errorf("ship %q: %w", s.Name, err)
		}
		ships = append(ships, ShipDefinition{
			Name:         s.Name,
			Class:        class,
			Role:         s.Role,
			Cost:         s.Cost,
			BuildTime:    s.BuildTime,
			Health:       s.Health,
			Armor:        s.Armor,
			Shields:      s.Shields,
			Energy:       s.Energy,
			EnergyRegen:  s.EnergyRegen,
			FlightSpeed:  s.FlightSpeed,
			VisualRange:  s.VisualRange,
			RadarRange:   s.RadarRange,
			FiringRange:  s.FiringRange,
			WeaponDamage: s.WeaponDamage,
		})
	}
	facilities := make([]FacilityDefinition, 0, len(fd.Facilities))
	for _, f := range fd.Facilities {
		facilities = append(facilities, FacilityDefinition{
			Type:      f.Type,
			Cost:      f.Cost,
			BuildTime: f.BuildTime,
			Health:    f.Health,
			Shields:   f.Shields,
		})
	}
	return NewCatalog(ships, facilities)
}

// LoadDefaultResearchRegistry builds the research registry from the embedded
// content file, validated against the given catalog.
func LoadDefaultResearchRegistry(catalog *Catalog) (*ResearchRegistry, error) {
	var rd researchDoc
	if err := readYAML("content/research.yaml", &rd); err != nil {
		return nil, err
	}
	nodes := make([]ResearchNode, 0, len(rd.Nodes))
	for _, n := range rd.Nodes {
		bonuses := make([]StatBonus, 0, len(n.Bonuses))
		for _, b := range n.Bonuses {
			scope, err := ParseBonusScope(b.Scope)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", n.ID, err)
			}
			bonuses = append(bonuses, StatBonus{
				Scope:       scope,
				Target:      b.Target,
				Attribute:   b.Attribute,
				Amount:      b.Amount,
				Description: b.Description,
			})
		}
		nodes = append(nodes, ResearchNode{
			ID:            n.ID,
			Name:          n.Name,
			Tree:          n.Tree,
			Tier:          n.Tier,
			HostFacility:  n.HostFacility,
			Cost:          n.Cost,
			Time:          n.Time,
			Prerequisites: n.Prerequisites,
			Unlocks:       n.Unlocks,
			Bonuses:       bonuses,
			Description:   n.Description,
		})
	}
	return NewResearchRegistry(nodes, catalog)
}

func readYAML(path string, out any) error {
	raw, err := contentFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrBadContent, path, err)
	}
	return nil
}
