/**
 * Filename: consistency.go
 * Path: allhic-merge
 *
 * Pairwise path comparison and the link-to-fixed-point driver. This is a
 * direct generalization of checkPathConsistency/extractMinCoordSet and
 * linkPaths from the original MergePaths.cpp, ported to operate on Path
 * values rather than aliased ContigPath pointers, so comparing two
 * paths never mutates a caller's copy in place.
 */

package allhicmerge

import "fmt"

// ConsistencyEngine implements pairwise path comparison and the iterative
// linking driver.
type ConsistencyEngine struct{}

// NewConsistencyEngine returns a ready-to-use engine. The engine carries no
// state of its own; CheckPathConsistency and LinkPaths leave their arguments
// unchanged, while Dedupe prunes the store it is given in place.
func NewConsistencyEngine() *ConsistencyEngine {
	return &ConsistencyEngine{}
}

// extractAnchors collects every index in path at which anchor appears,
// ignoring orientation, walking from the last element to the first. The
// walk direction mirrors the original extractMinCoordSet, which iterates
// `tIdx := maxIdx - idx - 1` -- a detail preserved because it determines
// which seed pair the double loop in CheckPathConsistency visits first.
func extractAnchors(path Path, anchor ContigKey) []int {
	var coords []int
	for idx := len(path) - 1; idx >= 0; idx-- {
		if path[idx].ID == anchor {
			coords = append(coords, idx)
		}
	}
	return coords
}

type candidateAlignment struct {
	Alignment
	duplicate bool
}

// CheckPathConsistency compares path a against path b, whose stored root
// key is bRoot. On success it returns the winning
// Alignment together with b correctly oriented to align with a -- the
// caller decides whether and how to persist that reorientation, rather
// than the routine mutating its argument in place.
func (e *ConsistencyEngine) CheckPathConsistency(a, b Path, bRoot ContigKey) (Alignment, Path, bool, error) {
	if len(a) == 0 || len(b) == 0 {
		return Alignment{}, nil, false, nil
	}

	anchorsA := extractAnchors(a, bRoot)
	anchorsB := extractAnchors(b, bRoot)
	if len(anchorsA) == 0 || len(anchorsB) == 0 {
		return Alignment{}, nil, false, nil
	}

	maxA := len(a) - 1
	maxB := len(b) - 1

	curB := b
	curFlipped := false
	candidates := make(map[int]*candidateAlignment)

	for _, i := range anchorsA {
		for _, j := range anchorsB {
			startA, endA := i, i
			var startB int
			if curFlipped {
				startB = maxB - j
			} else {
				startB = j
			}
			endB := startB

			if a[startA].Reverse != curB[startB].Reverse {
				curB = curB.Reversed()
				curFlipped = !curFlipped
				startB = maxB - startB
				endB = maxB - endB
			}

			lowValid := true
			for {
				if a[startA] != curB[startB] {
					lowValid = false
					break
				}
				if startA == 0 || startB == 0 {
					break
				}
				startA--
				startB--
			}

			highValid := true
			for {
				if a[endA] != curB[endB] {
					highValid = false
					break
				}
				if endA == maxA || endB == maxB {
					break
				}
				endA++
				endB++
			}

			if lowValid && highValid {
				count := endA - startA
				if existing, ok := candidates[count]; ok {
					existing.duplicate = true
				} else {
					candidates[count] = &candidateAlignment{
						Alignment: Alignment{
							StartA: startA, EndA: endA,
							StartB: startB, EndB: endB,
							Flipped: curFlipped,
						},
					}
				}
			}
		}
	}

	if len(candidates) == 0 {
		return Alignment{}, nil, false, nil
	}

	bestCount := -1
	for count := range candidates {
		if count > bestCount {
			bestCount = count
		}
	}
	winner := candidates[bestCount]

	if winner.StartA != 0 && winner.StartB != 0 {
		return Alignment{}, nil, false, &InconsistentMergeState{
			Message: "winning alignment does not touch index 0 in either path",
		}
	}
	if winner.EndA != maxA && winner.EndB != maxB {
		return Alignment{}, nil, false, &InconsistentMergeState{
			Message: "winning alignment does not touch the last index in either path",
		}
	}

	if winner.duplicate && bestCount != min(maxA, maxB) {
		return Alignment{}, nil, false, nil
	}

	if winner.Flipped != curFlipped {
		curB = curB.Reversed()
	}

	for c := 0; c < bestCount; c++ {
		if a[winner.StartA+c].ID != curB[winner.StartB+c].ID {
			return Alignment{}, nil, false, nil
		}
	}

	return winner.Alignment, curB, true, nil
}

// LinkPaths performs Phase 1 (grow): for every key in
// source, grow a fresh canonical path by absorbing compatible neighbours
// drawn (unchanged) from source itself, and publish the result under the
// same key in a brand new PathStore.
func (e *ConsistencyEngine) LinkPaths(source *PathStore) (*PathStore, error) {
	result := NewPathStore()
	for _, k := range source.SortedKeys() {
		seed, _ := source.Get(k)
		canonical := seed.Clone()

		worklist := make([]OrientedContig, len(canonical))
		copy(worklist, canonical)
		visited := map[ContigKey]bool{k: true}

		for len(worklist) > 0 {
			item := worklist[0]
			worklist = worklist[1:]
			if item.ID == k || visited[item.ID] {
				continue
			}
			visited[item.ID] = true

			child, ok := source.Get(item.ID)
			if !ok {
				continue
			}

			alignment, orientedChild, matched, err := e.CheckPathConsistency(canonical, child.Clone(), item.ID)
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}

			prepend := orientedChild[:alignment.StartB]
			suffix := orientedChild[alignment.EndB+1:]
			if len(prepend) > 0 {
				worklist = append(worklist, prepend...)
			}
			if len(suffix) > 0 {
				worklist = append(worklist, suffix...)
			}

			merged := make(Path, 0, len(prepend)+len(canonical)+len(suffix))
			merged = append(merged, prepend...)
			merged = append(merged, canonical...)
			merged = append(merged, suffix...)
			canonical = merged
		}

		result.Set(k, canonical)
	}
	return result, nil
}

// isSuperset reports whether super contains every key in sub.
func isSuperset(super, sub map[ContigKey]struct{}) bool {
	for k := range sub {
		if _, ok := super[k]; !ok {
			return false
		}
	}
	return true
}

// Dedupe performs Phase 2, pruning result in place:
// any path fully contained within another is removed, and circularly
// subsuming pairs keep only the longer one. It returns one warning string
// per unresolved circular pair, for the caller to log.
func (e *ConsistencyEngine) Dedupe(result *PathStore) ([]string, error) {
	var warnings []string
	warned := make(map[[2]ContigKey]bool)
	for _, k := range result.SortedKeys() {
		ref, ok := result.Get(k)
		if !ok {
			// Already pruned as a subsumed child of an earlier key.
			continue
		}

		worklist := make([]OrientedContig, len(ref))
		copy(worklist, ref)
		visited := map[ContigKey]bool{k: true}

		for len(worklist) > 0 {
			item := worklist[0]
			worklist = worklist[1:]
			if item.ID == k || visited[item.ID] {
				continue
			}
			visited[item.ID] = true

			child, ok := result.Get(item.ID)
			if !ok {
				continue
			}

			alignment, orientedChild, matched, err := e.CheckPathConsistency(ref, child.Clone(), item.ID)
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}

			fullyContained := alignment.StartB == 0 && alignment.EndB == len(orientedChild)-1
			if fullyContained {
				result.Erase(item.ID)
				continue
			}

			refKeys := ref.KeySet()
			childKeys := child.KeySet()
			refIncludesChild := isSuperset(refKeys, childKeys)
			childIncludesRef := isSuperset(childKeys, refKeys)

			if refIncludesChild && !childIncludesRef {
				result.Erase(item.ID)
			} else {
				pair := [2]ContigKey{k, item.ID}
				if pair[0] > pair[1] {
					pair[0], pair[1] = pair[1], pair[0]
				}
				if !warned[pair] {
					warned[pair] = true
					warnings = append(warnings, fmt.Sprintf(
						"possible circular paths between root %d and root %d", k, item.ID))
				}
			}
		}
	}
	return warnings, nil
}

// Link runs Phase 1 (LinkPaths) and then Phase 2 (Dedupe), once each, and
// returns the deduped result store.
func (e *ConsistencyEngine) Link(source *PathStore) (*PathStore, []string, error) {
	result, err := e.LinkPaths(source)
	if err != nil {
		return nil, nil, err
	}
	warnings, err := e.Dedupe(result)
	if err != nil {
		return nil, nil, err
	}
	return result, warnings, nil
}
