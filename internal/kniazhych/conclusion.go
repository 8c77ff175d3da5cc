package kniazhych

// conclude evaluates a fully resolved turn played by mover. before is the state
// the turn started from.
func (e *evaluator) conclude(before, after *GameState, mover Side) *Conclusion {
	if before.Board.throneHolder(mover) && after.Board.throneHolder(mover) {
		return &Conclusion{Kind: ConclusionThrone, Winner: mover}
	}

	opp := opposite(mover)
	if after.Coronation && isUnderCheck(&after.Board, opp, e.attacked(&after.Board, mover)) {
		return &Conclusion{Kind: ConclusionImmobilization, Winner: mover}
	}

	view := *after
	view.ActiveSide = opp
	view.Promotion = nil
	view.Conclusion = nil
	if !e.hasLegalMove(&view) {
		return &Conclusion{Kind: ConclusionImmobilization, Winner: mover}
	}
	return nil
}
