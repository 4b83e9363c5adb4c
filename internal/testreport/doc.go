// Package testreport turns JUnit XML results and ninja build logs into the
// markdown summary posted on premerge runs. It also extracts structured
// failure data for the advisor uploader.
package testreport
