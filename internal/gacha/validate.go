package gacha

func validateSides(n int) error {
	if n < 1 {
		return ErrInvalidSides
	}
	return nil
}
