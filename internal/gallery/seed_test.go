package gallery

import "testing"

func TestCollection_SeedsReturnsCopy(t *testing.T) {
	c := NewCollection([]Moment{{ID: "1", Title: "orig"}})

	got := c.Seeds()
	got[0].Title = "mutated"

	again, _ := c.Get("1")
	if again.Title != "orig" {
		t.Error("caller mutation leaked into the collection")
	}
}

func TestCollection_UpdateOverlay(t *testing.T) {
	c := NewCollection([]Moment{{ID: "1", Title: "orig"}, {ID: "2"}})

	if !c.Update(Moment{ID: "1", Title: "edited"}) {
		t.Fatal("Update = false, want true")
	}
	m, _ := c.Get("1")
	if m.Title != "edited" {
		t.Errorf("Title = %q, want 'edited'", m.Title)
	}
	if c.Update(Moment{ID: "nope"}) {
		t.Error("Update of unknown id = true, want false")
	}
}

func TestCollection_Remove(t *testing.T) {
	c := NewCollection([]Moment{{ID: "1"}, {ID: "2"}, {ID: "3"}})

	if !c.Remove("2") {
		t.Fatal("Remove = false, want true")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if _, ok := c.Get("2"); ok {
		t.Error("removed seed still present")
	}
	seeds := c.Seeds()
	if seeds[0].ID != "1" || seeds[1].ID != "3" {
		t.Errorf("order after remove = [%s %s], want [1 3]", seeds[0].ID, seeds[1].ID)
	}
	if c.Remove("2") {
		t.Error("second Remove = true, want false")
	}
}

func TestCollection_InjectionIsolation(t *testing.T) {
	a := NewCollection(SeedMoments())
	b := NewCollection(SeedMoments())

	a.Remove("1")
	if b.Len() != 15 {
		t.Error("removal in one collection affected another")
	}
}
