package constant

// AsciiArtLogo is the application's ASCII art banner.
const AsciiArtLogo = `
  _               _
 | |__  _   _  __| |_ __ __ _
 | '_ \| | | |/ _` + "`" + ` | '__/ _` + "`" + ` |
 | | | | |_| | (_| | | | (_| |
 |_| |_|\__, |\__,_|_|  \__,_|
        |___/
`
