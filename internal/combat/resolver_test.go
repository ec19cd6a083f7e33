package combat

import (
	"testing"

	"github.com/samdwyer/wordbattle/internal/entity"
	"github.com/samdwyer/wordbattle/internal/gamedata"
)

func mustTeam(t *testing.T, word string) *entity.Team {
	t.Helper()
	team, err := entity.BuildTeam(word, gamedata.MustLoadCatalog())
	if err != nil {
		t.Fatalf("BuildTeam(%q) error: %v", word, err)
	}
	return team
}

// newLetter creates a standalone combatant with explicit stats.
func newLetter(letter string, health, damage int, tags ...gamedata.Tag) *entity.Combatant {
	return entity.NewCombatant(gamedata.LetterDef{
		Letter: letter,
		Health: health,
		Damage: damage,
		Type:   gamedata.Consonant,
		Tags:   tags,
	}, 0)
}

func TestSelectAbility(t *testing.T) {
	tests := []struct {
		tags []gamedata.Tag
		want AbilityKind
	}{
		{nil, AbilityNone},
		{[]gamedata.Tag{gamedata.TagShielding}, AbilityShield},
		{[]gamedata.Tag{gamedata.TagHealing}, AbilityHeal},
		{[]gamedata.Tag{gamedata.TagHealing, gamedata.TagShielding}, AbilityShield},
		{[]gamedata.Tag{gamedata.TagDouble, gamedata.TagTargetLeft}, AbilityNone},
	}

	for _, tt := range tests {
		got := SelectAbility(gamedata.LetterDef{Tags: tt.tags})
		if got != tt.want {
			t.Errorf("SelectAbility(%v) = %s, want %s", tt.tags, got, tt.want)
		}
	}
}

func TestResolveShieldNeighbors(t *testing.T) {
	resolver := NewEffectResolver(gamedata.MustLoadCatalog())
	team := mustTeam(t, "lemon")

	// e at position 1 shields l(0) and m(2).
	result := resolver.ResolveAbility(team, 1)

	if result.Kind != AbilityShield {
		t.Fatalf("Kind = %s, want shield", result.Kind)
	}
	if len(result.Affected) != 2 || result.Affected[0] != 0 || result.Affected[1] != 2 {
		t.Errorf("Affected = %v, want [0 2]", result.Affected)
	}
	if !team.At(0).Shielded || !team.At(2).Shielded {
		t.Error("neighbors should be shielded")
	}
	if team.At(1).Shielded || team.At(3).Shielded {
		t.Error("caster and non-neighbors should not be shielded")
	}
}

func TestResolveShieldSkipsDead(t *testing.T) {
	resolver := NewEffectResolver(gamedata.MustLoadCatalog())
	team := mustTeam(t, "lemon")
	team.At(0).Health = 0
	team.At(2).Health = 0

	result := resolver.ResolveAbility(team, 1)

	if len(result.Affected) != 1 || result.Affected[0] != 3 {
		t.Errorf("Affected = %v, want [3]", result.Affected)
	}
	if team.At(0).Shielded || team.At(2).Shielded {
		t.Error("dead combatants should not be shielded")
	}
}

func TestResolveShieldDoesNotStack(t *testing.T) {
	resolver := NewEffectResolver(gamedata.MustLoadCatalog())
	team := mustTeam(t, "lemon")

	resolver.ResolveAbility(team, 1)
	resolver.ResolveAbility(team, 1)

	// One hit clears the shield regardless of how often it was granted.
	attacker := newLetter("r", 3, 1)
	if hit := resolver.ResolveHit(attacker, team.At(0)); !hit.ShieldBlocked {
		t.Fatal("first hit should be blocked")
	}
	if hit := resolver.ResolveHit(attacker, team.At(0)); hit.ShieldBlocked {
		t.Error("second hit should land, shields do not stack")
	}
}

func TestResolveHealOnlyWounded(t *testing.T) {
	resolver := NewEffectResolver(gamedata.MustLoadCatalog())
	team := mustTeam(t, "rates")
	team.At(1).Health = 1 // a, max 2

	// t at position 2 heals a(1) and e(3); e is at full health.
	result := resolver.ResolveAbility(team, 2)

	if result.Kind != AbilityHeal {
		t.Fatalf("Kind = %s, want heal", result.Kind)
	}
	if len(result.Affected) != 1 || result.Affected[0] != 1 {
		t.Errorf("Affected = %v, want [1]", result.Affected)
	}
	if team.At(1).Health != 2 {
		t.Errorf("a health = %d, want 2", team.At(1).Health)
	}
	if team.At(3).Health != team.At(3).MaxHealth {
		t.Error("heal should not exceed max health")
	}
}

func TestResolveAbilityNone(t *testing.T) {
	resolver := NewEffectResolver(gamedata.MustLoadCatalog())
	team := mustTeam(t, "lemon")

	// o has no support tag.
	result := resolver.ResolveAbility(team, 3)
	if result.Kind != AbilityNone || len(result.Affected) != 0 {
		t.Errorf("ResolveAbility(o) = %+v, want no-op", result)
	}
}

func TestSelectTarget(t *testing.T) {
	defenders := mustTeam(t, "lemon")

	tests := []struct {
		name     string
		attacker *entity.Combatant
		want     int
	}{
		{"same position", &entity.Combatant{Position: 3}, 3},
		{"target-left", &entity.Combatant{Position: 3, Def: gamedata.LetterDef{Tags: []gamedata.Tag{gamedata.TagTargetLeft}}}, 0},
		{"target-right", &entity.Combatant{Position: 0, Def: gamedata.LetterDef{Tags: []gamedata.Tag{gamedata.TagTargetRight}}}, 4},
	}
	for _, tt := range tests {
		if got := SelectTarget(tt.attacker, defenders); got != tt.want {
			t.Errorf("%s: SelectTarget() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSelectTargetRetargets(t *testing.T) {
	defenders := mustTeam(t, "lemon")
	defenders.At(0).Health = 0
	defenders.At(3).Health = 0

	// Dead primary target falls back to the first living defender.
	if got := SelectTarget(&entity.Combatant{Position: 3}, defenders); got != 1 {
		t.Errorf("SelectTarget(pos 3, dead) = %d, want 1", got)
	}

	left := &entity.Combatant{Def: gamedata.LetterDef{Tags: []gamedata.Tag{gamedata.TagTargetLeft}}}
	if got := SelectTarget(left, defenders); got != 1 {
		t.Errorf("SelectTarget(target-left, 0 dead) = %d, want 1", got)
	}

	// Attacker position past the end of a shorter defending team.
	short := mustTeam(t, "ox")
	if got := SelectTarget(&entity.Combatant{Position: 4}, short); got != 0 {
		t.Errorf("SelectTarget(pos 4 vs 2 letters) = %d, want 0", got)
	}

	for _, c := range defenders.Combatants {
		c.Health = 0
	}
	if got := SelectTarget(&entity.Combatant{Position: 2}, defenders); got != -1 {
		t.Errorf("SelectTarget(all dead) = %d, want -1", got)
	}
}

func TestResolveHitShieldAbsorbsAnyDamage(t *testing.T) {
	resolver := NewEffectResolver(gamedata.MustLoadCatalog())

	for _, damage := range []int{1, 2, 5, 100} {
		attacker := newLetter("z", 1, damage)
		target := newLetter("l", 3, 1)
		target.TempHealth = 1
		target.GrantShield()

		hit := resolver.ResolveHit(attacker, target)
		if !hit.ShieldBlocked || hit.TempDamage != 0 || hit.HealthDamage != 0 || hit.Killed {
			t.Errorf("damage %d: shielded hit = %+v, want fully blocked", damage, hit)
		}
		if target.Health != 3 || target.TempHealth != 1 || target.Shielded {
			t.Errorf("damage %d: target after block = %+v", damage, target)
		}

		hit = resolver.ResolveHit(attacker, target)
		if hit.ShieldBlocked {
			t.Errorf("damage %d: second hit should not be blocked", damage)
		}
		if hit.TempDamage+hit.HealthDamage != damage {
			t.Errorf("damage %d: unshielded hit applied %d", damage, hit.TempDamage+hit.HealthDamage)
		}
	}
}

func TestResolveHitTempHealthSplit(t *testing.T) {
	resolver := NewEffectResolver(gamedata.MustLoadCatalog())

	for damage := 1; damage <= 4; damage++ {
		for temp := 0; temp <= 3; temp++ {
			attacker := newLetter("z", 1, damage)
			target := newLetter("l", 10, 1)
			target.TempHealth = temp

			hit := resolver.ResolveHit(attacker, target)

			wantTemp := min(temp, damage)
			wantHealth := max(0, damage-temp)
			if hit.TempDamage != wantTemp || hit.HealthDamage != wantHealth {
				t.Errorf("D=%d T=%d: hit = (%d, %d), want (%d, %d)",
					damage, temp, hit.TempDamage, hit.HealthDamage, wantTemp, wantHealth)
			}
			if target.Health != 10-wantHealth {
				t.Errorf("D=%d T=%d: health = %d, want %d", damage, temp, target.Health, 10-wantHealth)
			}
		}
	}
}

func TestResolveHitKills(t *testing.T) {
	resolver := NewEffectResolver(gamedata.MustLoadCatalog())
	attacker := newLetter("a", 2, 2)
	target := newLetter("o", 1, 2)

	hit := resolver.ResolveHit(attacker, target)
	if !hit.Killed || target.IsAlive() {
		t.Errorf("hit = %+v, target should be dead", hit)
	}
	if target.Health != 0 {
		t.Errorf("health = %d, want clamped to 0", target.Health)
	}
}

// The opening buff on LEMON soaks R's first hit on L.
func TestRatesVersusLemonOpeningHit(t *testing.T) {
	resolver := NewEffectResolver(gamedata.MustLoadCatalog())
	player := mustTeam(t, "rates")
	opponent := mustTeam(t, "lemon")

	for _, c := range opponent.Combatants {
		c.AddTemporaryHealth(1)
	}

	r := player.At(0)
	target := SelectTarget(r, opponent)
	if target != 0 {
		t.Fatalf("R should target L at 0, got %d", target)
	}

	l := opponent.At(0)
	hit := resolver.ResolveHit(r, l)
	if hit.TempDamage != 1 || hit.HealthDamage != 0 {
		t.Errorf("hit = %+v, want 1 temp damage and no health damage", hit)
	}
	if l.Health != 3 || l.TempHealth != 0 || !l.IsAlive() {
		t.Errorf("L after hit: health=%d temp=%d alive=%v", l.Health, l.TempHealth, l.IsAlive())
	}
}

func TestCalculateHitPreview(t *testing.T) {
	attacker := newLetter("a", 2, 2)
	target := newLetter("l", 3, 1)
	target.TempHealth = 1

	hit := CalculateHit(attacker, target)
	if hit.TempDamage != 1 || hit.HealthDamage != 1 {
		t.Errorf("CalculateHit() = %+v, want 1 temp and 1 health", hit)
	}
	if target.Health != 3 || target.TempHealth != 1 {
		t.Error("preview should not have damaged target")
	}
}

func TestResurrect(t *testing.T) {
	resolver := NewEffectResolver(gamedata.MustLoadCatalog())
	team := mustTeam(t, "queue")
	u := team.At(1)

	if _, ok, _ := resolver.Resurrect(u); ok {
		t.Fatal("living combatant should not resurrect")
	}

	u.Health = 0
	letter, ok, err := resolver.Resurrect(u)
	if err != nil || !ok || letter != "o" {
		t.Fatalf("Resurrect() = %q, %v, %v, want \"o\", true, nil", letter, ok, err)
	}
	if u.Position != 1 || u.Letter() != "o" || u.Health != 1 || !u.IsAlive() {
		t.Errorf("resurrected combatant = %+v", u)
	}

	// o carries no revenant tag, so a second death is permanent.
	u.Health = 0
	if _, ok, _ := resolver.Resurrect(u); ok {
		t.Error("o should stay dead")
	}
}

func TestResurrectChained(t *testing.T) {
	catalog, err := gamedata.NewCatalog(map[string]gamedata.LetterDef{
		"a": {Health: 1, Damage: 1, Type: gamedata.Vowel, Tags: []gamedata.Tag{"revenant-b"}},
		"b": {Health: 2, Damage: 1, Type: gamedata.Consonant, Tags: []gamedata.Tag{"revenant-c"}},
		"c": {Health: 3, Damage: 1, Type: gamedata.Consonant},
	})
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}
	resolver := NewEffectResolver(catalog)
	team, err := entity.BuildTeam("a", catalog)
	if err != nil {
		t.Fatalf("BuildTeam() error: %v", err)
	}
	c := team.At(0)

	want := []string{"b", "c"}
	for _, letter := range want {
		c.Health = 0
		got, ok, err := resolver.Resurrect(c)
		if err != nil || !ok || got != letter {
			t.Fatalf("Resurrect() = %q, %v, %v, want %q", got, ok, err, letter)
		}
	}
	c.Health = 0
	if _, ok, _ := resolver.Resurrect(c); ok {
		t.Error("end of chain should stay dead")
	}
	if c.Resurrections != 2 {
		t.Errorf("Resurrections = %d, want 2", c.Resurrections)
	}
}
