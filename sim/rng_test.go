package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(SubsystemMine(0)).Float64()
		v2 := rng2.ForSubsystem(SubsystemMine(0)).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from mine 0 doesn't affect mine 1
	rngA := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemMine(0)).Float64()
	}
	aMineOneFirst := rngA.ForSubsystem(SubsystemMine(1)).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	expectedFirst := fresh.ForSubsystem(SubsystemMine(1)).Float64()

	if aMineOneFirst != expectedFirst {
		t.Errorf("mine 1 first value = %v, want %v (isolation broken)", aMineOneFirst, expectedFirst)
	}
}

func TestPartitionedRNG_DifferentSeedsDiverge(t *testing.T) {
	a := NewPartitionedRNG(NewSimulationKey(1)).ForSubsystem(SubsystemMine(0))
	b := NewPartitionedRNG(NewSimulationKey(2)).ForSubsystem(SubsystemMine(0))

	same := true
	for i := 0; i < 5; i++ {
		if a.Int63() != b.Int63() {
			same = false
		}
	}
	if same {
		t.Error("seeds 1 and 2 produced identical streams")
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	// BDD: Same name returns same *rand.Rand instance
	rng := NewPartitionedRNG(NewSimulationKey(42))

	rng1 := rng.ForSubsystem(SubsystemMine(3))
	rng2 := rng.ForSubsystem(SubsystemMine(3))

	if rng1 != rng2 {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_NegativeSeed(t *testing.T) {
	// BDD: MinInt64 seed works correctly
	rng := NewPartitionedRNG(NewSimulationKey(math.MinInt64))

	val := rng.ForSubsystem(SubsystemMine(0)).Float64()
	if val < 0 || val >= 1 {
		t.Errorf("Float64() returned %v, want [0, 1)", val)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	// BDD: Subsystems map is empty until ForSubsystem is called
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}

	rng.ForSubsystem(SubsystemMine(0))

	if len(rng.subsystems) != 1 {
		t.Errorf("After one ForSubsystem call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

// === fnv1a64 Tests ===

func TestFnv1a64_Deterministic(t *testing.T) {
	input := "mine_7"
	if fnv1a64(input) != fnv1a64(input) {
		t.Errorf("fnv1a64(%q) not deterministic", input)
	}
}

func TestFnv1a64_Collision(t *testing.T) {
	// Different subsystem names should produce different hashes (spot check)
	names := []string{"mine_0", "mine_1", "mine_10", "mine_100", ""}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

// === SubsystemMine Tests ===

func TestSubsystemMine(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{0, "mine_0"},
		{1, "mine_1"},
		{100, "mine_100"},
	}

	for _, tt := range tests {
		got := SubsystemMine(tt.id)
		if got != tt.want {
			t.Errorf("SubsystemMine(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

// === Benchmark ===

func BenchmarkPartitionedRNG_ForSubsystem_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForSubsystem(SubsystemMine(0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForSubsystem(SubsystemMine(0))
	}
}
