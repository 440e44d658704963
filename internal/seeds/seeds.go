package seeds

func SeedAll() error {
	if err := SeedAgendas(); err != nil {
		return err
	}
	if err := SeedTestimonials(); err != nil {
		return err
	}
	return nil
}
