package geometry

// hitEpsilon is the smallest distance reported as a hit. Rays spawned on a
// surface would otherwise re-hit that surface through rounding error.
const hitEpsilon = 1e-6
