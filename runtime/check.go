package runtime

// Check runs the full validator (§4.5): port capability shape, hash
// matching between every output link and its input, acyclicity modulo
// bootstrap, and rate consistency across every edge. It is the only way to
// reach ModelReady; nothing here spawns a task.
func (m *ModelUnknown) Check() (*ModelReady, error) {
	for _, a := range m.actors {
		if err := checkPortShape(a); err != nil {
			return nil, err
		}
	}
	if err := checkHashes(m.actors); err != nil {
		return nil, err
	}
	if err := checkRates(m.actors); err != nil {
		return nil, err
	}
	if err := checkAcyclicity(m.actors); err != nil {
		return nil, err
	}
	return &ModelReady{modelCore: m.modelCore}, nil
}

func checkPortShape(a *Actor) error {
	switch {
	case a.NI == 0 && len(a.inputs) > 0:
		return errSomeInputsZeroRate(a.Name)
	case a.NI > 0 && len(a.inputs) == 0:
		return errNoInputsPositiveRate(a.Name)
	}
	switch {
	case a.NO == 0 && len(a.outputs) > 0:
		return errSomeOutputsZeroRate(a.Name)
	case a.NO > 0 && len(a.outputs) == 0:
		return errNoOutputsPositiveRate(a.Name)
	}
	return nil
}

// checkHashes verifies every output is connected (no DisconnectedOutput)
// and that the multiset of input hashes equals the multiset of output
// hashes counted with fan-out (no UnmatchedHash).
func checkHashes(actors []*Actor) error {
	outCount := make(map[uint64]int)
	for _, a := range actors {
		for _, out := range a.outputs {
			if out.linkCount() == 0 {
				return errDisconnectedOutput(a.Name, out.uidName())
			}
			for _, h := range out.linkHashes() {
				outCount[h]++
			}
		}
	}
	inCount := make(map[uint64]int)
	for _, a := range actors {
		for _, in := range a.inputs {
			h := in.hash()
			inCount[h]++
			if outCount[h] == 0 {
				return errUnmatchedHash(a.Name, in.uidName())
			}
		}
	}
	for _, a := range actors {
		for _, out := range a.outputs {
			for _, h := range out.linkHashes() {
				if inCount[h] != outCount[h] {
					return errUnmatchedHash(a.Name, out.uidName())
				}
			}
		}
	}
	return nil
}

// checkRates enforces NOProducer == NIConsumer on every edge; a mismatch
// must be bridged by an explicit rate-transition adapter actor instead.
func checkRates(actors []*Actor) error {
	for _, a := range actors {
		for _, out := range a.outputs {
			for _, e := range out.edges() {
				if a.NO != e.consumer.NI {
					return errRateMismatch(a.Name, a.NO, e.consumer.NI, out.uidName())
				}
			}
		}
	}
	return nil
}

// checkAcyclicity walks the actor graph with the classic white/gray/black
// DFS coloring. A gray-to-gray edge is a back edge, i.e. it closes a cycle;
// that cycle is valid only if it contains at least one bootstrap edge.
func checkAcyclicity(actors []*Actor) error {
	const (
		white = iota
		gray
		black
	)
	index := make(map[*Actor]int, len(actors))
	for i, a := range actors {
		index[a] = i
	}
	colors := make([]int, len(actors))
	var stack []int
	var edgeBootstrap []bool

	var dfs func(i int) error
	dfs = func(i int) error {
		colors[i] = gray
		stack = append(stack, i)
		a := actors[i]
		for _, out := range a.outputs {
			for _, e := range out.edges() {
				j, ok := index[e.consumer]
				if !ok {
					continue
				}
				switch colors[j] {
				case white:
					edgeBootstrap = append(edgeBootstrap, e.bootstrap)
					if err := dfs(j); err != nil {
						return err
					}
					edgeBootstrap = edgeBootstrap[:len(edgeBootstrap)-1]
				case gray:
					pos := -1
					for k, s := range stack {
						if s == j {
							pos = k
							break
						}
					}
					hasBootstrap := e.bootstrap
					if pos >= 0 {
						for k := pos; k < len(edgeBootstrap); k++ {
							if edgeBootstrap[k] {
								hasBootstrap = true
							}
						}
					}
					if !hasBootstrap {
						names := make([]string, 0, len(stack)-pos)
						for k := pos; k < len(stack); k++ {
							names = append(names, actors[stack[k]].Name)
						}
						return errCycleWithoutBootstrap(names)
					}
				}
				// black: already fully explored, not part of a new cycle.
			}
		}
		stack = stack[:len(stack)-1]
		colors[i] = black
		return nil
	}

	for i := range actors {
		if colors[i] == white {
			if err := dfs(i); err != nil {
				return err
			}
		}
	}
	return nil
}
