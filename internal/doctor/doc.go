// Package doctor diagnoses an mdBook project for problems that keep the
// frontmatter-strip preprocessor from running or from doing its job.
//
// A [Runner] executes registered [Check] values and aggregates their
// [CheckResult] values into a [DoctorReport]. The checks in this package
// share a [BookDir], which loads book.toml once:
//
//	dir := doctor.LoadBookDir(".")
//	runner := doctor.NewRunner()
//	runner.AddCheck(doctor.NewBookTomlCheck(dir))
//	runner.AddCheck(doctor.NewChapterFrontmatterCheck(dir))
//	report := runner.Run()
//
// Checks that can repair what they find implement [Fixer].
package doctor
