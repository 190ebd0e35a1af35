package testhelpers

// Sample markup used across package tests
var (
	SampleBold     = "<b>hi</b>"
	SampleReserved = `<a href="/q?a=1&b=2" title='quoted'>link</a>`
	SampleStyled   = "<style>\n  .card { color: red; }\n</style>\n<div class=\"card\">\n  <p>one</p>\n  <p>two</p>\n</div>"
	SampleScript   = "<div id=\"out\"></div>\n<script>document.getElementById('out').textContent = 'ran';</script>"
	BlankInputs    = []string{"", "   ", "\n\t\n"}
)
