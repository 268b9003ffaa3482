package sim

import (
	"fmt"
	"sort"
)

// BonusScope identifies what a StatBonus applies to.
type BonusScope int

const (
	ScopeShipClass BonusScope = iota // all hulls of one ShipClass
	ScopeAllShips                    // every hull
	ScopeBase
	ScopeFacility
	ScopeEconomy
)

func (s BonusScope) String() string {
	switch s {
	case ScopeShipClass:
		return "ship_class"
	case ScopeAllShips:
		return "all_ships"
	case ScopeBase:
		return "base"
	case ScopeFacility:
		return "facility"
	case ScopeEconomy:
		return "economy"
	default:
		return "unknown"
	}
}

// ParseBonusScope converts a content-file scope string to a BonusScope.
func ParseBonusScope(s string) (BonusScope, error) {
	switch s {
	case "ship_class":
		return ScopeShipClass, nil
	case "all_ships":
		return ScopeAllShips, nil
	case "base":
		return ScopeBase, nil
	case "facility":
		return ScopeFacility, nil
	case "economy":
		return ScopeEconomy, nil
	default:
		return 0, fmt.Errorf("%w: unknown bonus scope %q", ErrBadContent, s)
	}
}

// StatBonus is a fractional stat modifier granted by a completed research
// node (0.10 = +10%). Bonuses are recorded when earned but never applied to
// live entities by this subsystem; the application formula (additive vs.
// multiplicative stacking) is undecided upstream.
type StatBonus struct {
	Scope       BonusScope
	Target      string // scope-dependent identifier, "*" for wildcard
	Attribute   string
	Amount      float64
	Description string
}

// ResearchNode is one immutable tech-tree entry. Prerequisites reference
// other node ids and must form a DAG.
type ResearchNode struct {
	ID            string
	Name          string
	Tree          string
	Tier          int
	HostFacility  string // facility type that must be online for progress
	Cost          float64
	Time          float64 // seconds of research
	Prerequisites []string
	Unlocks       []string // hull names certified by this node
	Bonuses       []StatBonus
	Description   string
}

// ResearchRegistry is the validated, immutable node graph.
type ResearchRegistry struct {
	nodes map[string]*ResearchNode
	order []string            // ids in registration order
	gates map[string][]string // hull name → node ids that unlock it
}

// NewResearchRegistry validates node uniqueness, referential integrity
// against the catalog, and prerequisite acyclicity. Any violation is an
// ErrBadContent: a broken tech tree must fail at startup, not mid-game.
func NewResearchRegistry(nodes []ResearchNode, catalog *Catalog) (*ResearchRegistry, error) {
	r := &ResearchRegistry{
		nodes: make(map[string]*ResearchNode, len(nodes)),
		order: make([]string, 0, len(nodes)),
		gates: make(map[string][]string),
	}
	for i := range nodes {
		n := nodes[i]
		if n.ID == "" {
			return nil, fmt.Errorf("%w: research node %d has empty id", ErrBadContent, i)
		}
		if n.Time <= 0 {
			return nil, fmt.Errorf("%w: research node %q has non-positive time", ErrBadContent, n.ID)
		}
		if _, dup := r.nodes[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate research node %q", ErrBadContent, n.ID)
		}
		if !catalog.HasFacility(n.HostFacility) {
			return nil, fmt.Errorf("%w: node %q hosted at unknown facility %q", ErrBadContent, n.ID, n.HostFacility)
		}
		for _, ship := range n.Unlocks {
			if !catalog.HasShip(ship) {
				return nil, fmt.Errorf("%w: node %q unlocks unknown ship %q", ErrBadContent, n.ID, ship)
			}
		}
		r.nodes[n.ID] = &n
		r.order = append(r.order, n.ID)
	}
	for _, id := range r.order {
		n := r.nodes[id]
		for _, pre := range n.Prerequisites {
			if _, ok := r.nodes[pre]; !ok {
				return nil, fmt.Errorf("%w: node %q requires unknown node %q", ErrBadContent, id, pre)
			}
		}
		for _, ship := range n.Unlocks {
			r.gates[ship] = append(r.gates[ship], id)
		}
	}
	if cyc := r.findCycle(); cyc != "" {
		return nil, fmt.Errorf("%w: prerequisite cycle through node %q", ErrBadContent, cyc)
	}
	return r, nil
}

// findCycle runs Kahn's algorithm over the prerequisite graph and returns
// the id of some node on a cycle, or "" if the graph is a DAG.
func (r *ResearchRegistry) findCycle() string {
	indeg := make(map[string]int, len(r.nodes))
	for id := range r.nodes {
		indeg[id] = 0
	}
	for _, n := range r.nodes {
		indeg[n.ID] = len(n.Prerequisites)
	}
	queue := make([]string, 0, len(r.nodes))
	for id, d := range indeg {
		if d == 0 {
			queue = append(queue, id)
		}
	}
	seen := 0
	dependents := make(map[string][]string)
	for _, n := range r.nodes {
		for _, pre := range n.Prerequisites {
			dependents[pre] = append(dependents[pre], n.ID)
		}
	}
	for len(queue) > 0 {
		id := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		seen++
		for _, dep := range dependents[id] {
			indeg[dep]--
			if indeg[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	if seen == len(r.nodes) {
		return ""
	}
	// Any node with remaining in-degree sits on (or behind) a cycle.
	remaining := make([]string, 0)
	for id, d := range indeg {
		if d > 0 {
			remaining = append(remaining, id)
		}
	}
	sort.Strings(remaining)
	return remaining[0]
}

// Node returns the node with the given id.
func (r *ResearchRegistry) Node(id string) (*ResearchNode, error) {
	n, ok := r.nodes[id]
	if !ok {
		return nil, fmt.Errorf("research node %q: %w", id, ErrNotFound)
	}
	return n, nil
}

// Nodes returns every node in registration order.
func (r *ResearchRegistry) Nodes() []*ResearchNode {
	out := make([]*ResearchNode, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.nodes[id])
	}
	return out
}

// UnlockGates returns the ids of nodes that unlock the given hull name.
// An empty result means the hull is ungated (unlocked by default).
func (r *ResearchRegistry) UnlockGates(ship string) []string {
	return r.gates[ship]
}

// --- ResearchManager ---

// ResearchProgress is the transient state of the single active research item.
type ResearchProgress struct {
	NodeID    string
	Remaining float64 // seconds
	Paused    bool    // host facility offline
}

// ResearchManager is the tech-tree state machine. Per node the effective
// state is one of locked / available / active / completed; at most one node
// is active across the whole manager. Facility online flags gate both
// starting and progressing research and default to offline; the host
// application drives them via SetFacilityOnline as facilities are built and
// destroyed.
type ResearchManager struct {
	registry  *ResearchRegistry
	completed map[string]bool
	doneOrder []string // completion order, for CompletedNodes
	active    *ResearchProgress
	online    map[string]bool // facility type → online
	events    *EventLog
}

// NewResearchManager creates a manager over a validated registry.
// events may be nil.
func NewResearchManager(registry *ResearchRegistry, events *EventLog) *ResearchManager {
	return &ResearchManager{
		registry:  registry,
		completed: make(map[string]bool),
		online:    make(map[string]bool),
		events:    events,
	}
}

// Registry returns the underlying node registry.
func (m *ResearchManager) Registry() *ResearchRegistry { return m.registry }

// SetFacilityOnline flips the online flag for a facility type. Taking the
// active node's host facility offline pauses the active research in place;
// bringing it back resumes ticking.
func (m *ResearchManager) SetFacilityOnline(ftype string, online bool) {
	m.online[ftype] = online
	if m.active == nil {
		return
	}
	n, err := m.registry.Node(m.active.NodeID)
	if err != nil {
		return
	}
	if n.HostFacility == ftype {
		m.active.Paused = !online
	}
}

// FacilityOnline reports the online flag for a facility type.
func (m *ResearchManager) FacilityOnline(ftype string) bool {
	return m.online[ftype]
}

// prerequisitesMet reports whether every prerequisite of n is completed.
func (m *ResearchManager) prerequisitesMet(n *ResearchNode) bool {
	for _, pre := range n.Prerequisites {
		if !m.completed[pre] {
			return false
		}
	}
	return true
}

// CanStart reports whether Start(id, resources) would succeed right now.
// UI code polls this before offering the start action.
func (m *ResearchManager) CanStart(id string, resources float64) bool {
	n, err := m.registry.Node(id)
	if err != nil {
		return false
	}
	if m.completed[id] || m.active != nil {
		return false
	}
	if resources < n.Cost {
		return false
	}
	if !m.online[n.HostFacility] {
		return false
	}
	return m.prerequisitesMet(n)
}

// Start begins researching a node. Returns false without side effects when
// any precondition fails; this is an expected condition, not an error.
func (m *ResearchManager) Start(id string, resources float64) bool {
	if !m.CanStart(id, resources) {
		return false
	}
	n, _ := m.registry.Node(id)
	m.active = &ResearchProgress{NodeID: id, Remaining: n.Time}
	if m.events != nil {
		m.events.Add("research", "start", id, n.Time)
	}
	return true
}

// Update advances the active research by dt seconds and returns the node
// completed during this call, or nil. Completion is reported exactly once.
// Paused research does not tick. A non-positive dt is a no-op.
func (m *ResearchManager) Update(dt float64) *ResearchNode {
	if dt <= 0 || m.active == nil || m.active.Paused {
		return nil
	}
	m.active.Remaining -= dt
	if m.active.Remaining > 0 {
		return nil
	}
	n, err := m.registry.Node(m.active.NodeID)
	m.active = nil
	if err != nil {
		return nil
	}
	m.markCompleted(n)
	return n
}

func (m *ResearchManager) markCompleted(n *ResearchNode) {
	if m.completed[n.ID] {
		return
	}
	m.completed[n.ID] = true
	m.doneOrder = append(m.doneOrder, n.ID)
	if m.events != nil {
		m.events.Add("research", "complete", n.ID, 0)
	}
}

// ForceComplete marks a node completed unconditionally, clearing the active
// slot if that node was active. Scenario-scripting bypass; only an unknown
// id fails.
func (m *ResearchManager) ForceComplete(id string) error {
	n, err := m.registry.Node(id)
	if err != nil {
		return err
	}
	if m.active != nil && m.active.NodeID == id {
		m.active = nil
	}
	m.markCompleted(n)
	return nil
}

// AvailableNodes returns the nodes whose start conditions (prerequisites,
// facility online) currently hold, given the caller's resources. While any
// node is active the set is empty: research is strictly serial.
func (m *ResearchManager) AvailableNodes(resources float64) []*ResearchNode {
	if m.active != nil {
		return nil
	}
	var out []*ResearchNode
	for _, n := range m.registry.Nodes() {
		if m.completed[n.ID] {
			continue
		}
		if resources < n.Cost || !m.online[n.HostFacility] {
			continue
		}
		if m.prerequisitesMet(n) {
			out = append(out, n)
		}
	}
	return out
}

// IsShipUnlocked reports whether a hull may be produced. Hulls no node
// references are unlocked by default; a gated hull unlocks when at least one
// referencing node is completed.
func (m *ResearchManager) IsShipUnlocked(name string) bool {
	gates := m.registry.UnlockGates(name)
	if len(gates) == 0 {
		return true
	}
	for _, id := range gates {
		if m.completed[id] {
			return true
		}
	}
	return false
}

// IsCompleted reports whether the node with the given id is completed.
func (m *ResearchManager) IsCompleted(id string) bool {
	return m.completed[id]
}

// CompletedNodes returns completed node ids in completion order.
func (m *ResearchManager) CompletedNodes() []string {
	out := make([]string, len(m.doneOrder))
	copy(out, m.doneOrder)
	return out
}

// ActiveNode returns a copy of the active research progress, or nil.
func (m *ResearchManager) ActiveNode() *ResearchProgress {
	if m.active == nil {
		return nil
	}
	p := *m.active
	return &p
}

// EarnedBonuses returns the stat bonuses of every completed node, in
// completion order. Storage only: nothing in this subsystem applies them.
func (m *ResearchManager) EarnedBonuses() []StatBonus {
	var out []StatBonus
	for _, id := range m.doneOrder {
		if n, ok := m.registry.nodes[id]; ok {
			out = append(out, n.Bonuses...)
		}
	}
	return out
}
