package signer

import "time"

// SigningTime wraps a time.Time converted to UTC with cached copies of the
// two string forms SigV4 needs. Both forms derive from the same instant;
// the UTC conversion happens once, in NewSigningTime, so no local-timezone
// representation can leak into the scope or string-to-sign.
type SigningTime struct {
	time.Time
	timeFormat      string
	shortTimeFormat string
}

// NewSigningTime creates a SigningTime from t, converting it to UTC.
func NewSigningTime(t time.Time) SigningTime {
	return SigningTime{
		Time: t.UTC(),
	}
}

// TimeFormat returns the instant as YYYYMMDDTHHMMSSZ.
func (st *SigningTime) TimeFormat() string {
	if st.timeFormat == "" {
		st.timeFormat = st.Time.Format(TimeFormat)
	}
	return st.timeFormat
}

// ShortTimeFormat returns the instant as YYYYMMDD, for the credential scope.
func (st *SigningTime) ShortTimeFormat() string {
	if st.shortTimeFormat == "" {
		st.shortTimeFormat = st.Time.Format(ShortTimeFormat)
	}
	return st.shortTimeFormat
}
