package hair

// UpdatePoint computes one point's next kinematic state from the
// previous buffer and writes it to the next buffer, exactly once. For
// inert indices (point >= strand length) it is an idempotent no-op.
//
// All loads come from prev: this point's record plus the predecessor's
// position (or the strand anchor for point 0). Because the single
// cross-point dependency is read from the settled previous state,
// invocations for different points may run in any order or fully
// concurrently.
func UpdatePoint(next, prev *Buffer, strands []Strand, par Params, strand, point int) {
	if point >= strands[strand].Length {
		return
	}

	i := Index(strand, point)
	accel := prev.Accel[i]
	vel := prev.Vel[i]
	pos := prev.Pos[i]

	hook := strands[strand].Anchor
	if point > 0 {
		hook = prev.Pos[i-1]
	}

	dt := par.Dt

	// Predict where current kinematics alone would put the point, then
	// spring back toward the hook from there.
	predicted := pos.Add(vel.Scale(dt)).Add(accel.Scale(0.5 * dt * dt))

	disp := predicted.Sub(hook)
	dist := disp.Length()
	var dir Vec3
	stretch := 0.0
	if dist > 0 {
		dir = disp.Scale(1 / dist)
		stretch = dist - par.RestLength
	}
	// dist == 0: predicted coincides with the hook, the spring has no
	// defined direction and contributes nothing this tick.

	force := par.Gravity.Scale(par.Mass).
		Sub(dir.Scale(par.Stiffness * stretch)).
		Sub(vel.Scale(par.Damping))

	newAccel := force.Scale(1 / par.Mass)
	newVel := vel.Add(newAccel.Scale(dt))
	newPos := pos.Add(newAccel.Scale(0.5 * dt * dt)).Add(vel.Scale(dt))

	next.Accel[i] = newAccel
	next.Vel[i] = newVel
	next.Pos[i] = newPos
}

// UpdateAll is the serial reference sweep: one UpdatePoint invocation
// per (strand, point) unit, inert slots included. The parallel
// dispatch paths must produce a next buffer bit-identical to this one.
func UpdateAll(next, prev *Buffer, strands []Strand, par Params) {
	for s := range strands {
		for p := 0; p < MaxStrandPoints; p++ {
			UpdatePoint(next, prev, strands, par, s, p)
		}
	}
}
