package core

// Field resolves name on the run.
//
// The synthetic fields "created" and "n_checkpoints" come from the run
// itself. Any other name is looked up in the parameters, then in the metrics
// of the best checkpoint, then in every checkpoint in step order. ok is false
// when nothing is bound to name.
func (r *Run) Field(name string) (Value, bool) {
	switch name {
	case FieldCreated:
		return Time(r.Created), true
	case FieldNumCheckpoints:
		return Int(int64(r.NumCheckpoints())), true
	}

	if v, ok := r.Params.Get(name); ok {
		return v, true
	}
	if len(r.Checkpoints) == 0 {
		return Value{}, false
	}
	if _, best, ok := r.BestCheckpoint(); ok {
		if v, ok := best.Metrics.Get(name); ok {
			return v, true
		}
	}
	for _, cp := range r.Checkpoints {
		if v, ok := cp.Metrics.Get(name); ok {
			return v, true
		}
	}
	return Value{}, false
}

// FieldOr resolves name, returning def when nothing is bound.
func (r *Run) FieldOr(name string, def Value) Value {
	if v, ok := r.Field(name); ok {
		return v
	}
	return def
}
