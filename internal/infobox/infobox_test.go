package infobox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const portableFishPage = `
<div class="mw-parser-output">
<aside class="portable-infobox">
  <figure class="pi-image">
    <a href="/wiki/File:Tuna.png" class="image">
      <img src="https://static.wiki.gg/coraldex/images/tuna.png" alt="Tuna">
    </a>
    <figcaption class="pi-caption">A sleek ocean hunter.</figcaption>
  </figure>
  <div class="pi-item pi-data" data-source="location">
    <h3 class="pi-data-label">Location</h3>
    <div class="pi-data-value">Ocean • Beach • Ocean</div>
  </div>
  <div class="pi-item pi-data" data-source="weather">
    <h3 class="pi-data-label">Weather</h3>
    <div class="pi-data-value">Any</div>
  </div>
  <div class="pi-item pi-data" data-source="time">
    <h3 class="pi-data-label">Time</h3>
    <div class="pi-data-value">Morning, Night</div>
  </div>
  <div class="pi-item pi-data" data-source="rarity">
    <h3 class="pi-data-label">Rarity</h3>
    <div class="pi-data-value">Super Rare</div>
  </div>
  <div class="pi-item pi-data" data-source="difficulty">
    <h3 class="pi-data-label">Difficulty</h3>
    <div class="pi-data-value">65</div>
  </div>
  <div class="pi-item pi-data" data-source="size">
    <h3 class="pi-data-label">Size</h3>
    <div class="pi-data-value">Large</div>
  </div>
  <table class="pi-horizontal-group">
    <caption>Season</caption>
    <tr><th>Spring</th><th>Summer</th><th>Fall</th><th>Winter</th></tr>
    <tr><td>✓</td><td>—</td><td><img alt="check" src="check.png"></td><td></td></tr>
  </table>
  <table class="pi-horizontal-group">
    <caption>Sell prices</caption>
    <tr><th>Base</th><th>Bronze</th><th>Silver</th><th>Gold</th><th>Osmium</th></tr>
    <tr><td>120g</td><td>150g</td><td>180g</td><td>240g</td><td>360g</td></tr>
  </table>
  <table class="pi-horizontal-group">
    <caption>Sell prices (Catch perk)</caption>
    <tr><th>Base</th><th>Bronze</th><th>Silver</th><th>Gold</th><th>Osmium</th></tr>
    <tr><td>180g</td><td>225g</td><td>270g</td><td>360g</td><td>540g</td></tr>
  </table>
</aside>
</div>`

func TestParsePortableLayout(t *testing.T) {
	out := Parse(portableFishPage)

	require.Equal(t, "https://static.wiki.gg/coraldex/images/tuna.png", out.ImageURL)
	require.Equal(t, "A sleek ocean hunter.", out.Description)
	require.Equal(t, []string{"Ocean", "Beach"}, out.Locations)
	require.Empty(t, out.Weather) // "Any" means unrestricted
	require.Equal(t, []string{"morning", "night"}, out.TimeOfDay)
	require.Equal(t, "super_rare", out.Rarity)
	require.Equal(t, "65", out.Metadata["difficulty"])
	require.Equal(t, "Large", out.Metadata["size"])
}

func TestSeasonTableWinsOverFreeText(t *testing.T) {
	out := Parse(portableFishPage)
	// table has spring checked by glyph and fall checked by image
	require.Equal(t, []string{"spring", "fall"}, out.Seasons)
}

func TestPriceGrids(t *testing.T) {
	out := Parse(portableFishPage)

	require.NotNil(t, out.BasePrice)
	require.Equal(t, int64(120), *out.BasePrice)

	prices, ok := out.Metadata["prices"].(map[string]int64)
	require.True(t, ok)
	require.Equal(t, int64(360), prices["osmium"])

	perk, ok := out.Metadata["prices_with_perk"].(map[string]int64)
	require.True(t, ok)
	require.Equal(t, int64(180), perk["base"])
}

const classicCropPage = `
<div class="mw-parser-output">
<table class="infobox">
  <tr><td colspan="2">
    <figure class="pi-image">
      <img data-src="https://static.wiki.gg/coraldex/images/taro.png" class="lazyload" alt="Taro">
    </figure>
  </td></tr>
  <tr><th>Season</th><td>Spring, Summer</td></tr>
  <tr><th>Seed</th><td>Taro Seeds (25g)</td></tr>
  <tr><th>Growth</th><td>10 days, regrows every 3 days</td></tr>
  <tr><th>Unlock</th><td>Farming level 4</td></tr>
  <tr><th>Price</th><td>Base: 1,234</td></tr>
</table>
</div>`

func TestParseClassicLayout(t *testing.T) {
	out := Parse(classicCropPage)

	// lazy-load fallback scoped to the asset host
	require.Equal(t, "https://static.wiki.gg/coraldex/images/taro.png", out.ImageURL)
	// no season checkbox table: free text is used
	require.Equal(t, []string{"spring", "summer"}, out.Seasons)
	require.Equal(t, "Taro Seeds", out.Metadata["seed_name"])
	require.EqualValues(t, 25, out.Metadata["seed_price"])
	require.EqualValues(t, 10, out.Metadata["growth_days"])
	require.EqualValues(t, 3, out.Metadata["regrowth_days"])
	require.Equal(t, "Farming level 4", out.Metadata["unlock"])
	require.NotNil(t, out.BasePrice)
	require.Equal(t, int64(1234), *out.BasePrice)
}

const artisanPage = `
<aside class="portable-infobox">
  <div class="pi-item pi-data" data-source="equipment">
    <h3 class="pi-data-label">Equipment</h3>
    <div class="pi-data-value"><a href="/wiki/Keg" title="Keg">Keg</a></div>
  </div>
  <div class="pi-item pi-data" data-source="input">
    <h3 class="pi-data-label">Input</h3>
    <div class="pi-data-value">Wheat</div>
  </div>
  <div class="pi-item pi-data" data-source="processing">
    <h3 class="pi-data-label">Processing</h3>
    <div class="pi-data-value">2 days</div>
  </div>
</aside>`

func TestArtisanExtras(t *testing.T) {
	out := Parse(artisanPage)

	require.Equal(t, "Keg", out.Metadata["equipment"])
	require.Equal(t, "Wheat", out.Metadata["input"])
	require.EqualValues(t, 2, out.Metadata["processing_days"])
	_, hasHours := out.Metadata["processing_hours"]
	_, hasMinutes := out.Metadata["processing_minutes"]
	require.False(t, hasHours)
	require.False(t, hasMinutes)
}

const characterPage = `
<aside class="portable-infobox">
  <div class="pi-item pi-data" data-source="birthday">
    <h3 class="pi-data-label">Birthday</h3>
    <div class="pi-data-value"><span class="season-icon"><b>Spring 12</b></span></div>
  </div>
  <div class="pi-item pi-data" data-source="residence">
    <h3 class="pi-data-label">Residence</h3>
    <div class="pi-data-value">Starlet Town</div>
  </div>
  <div class="pi-item pi-data" data-source="type">
    <h3 class="pi-data-label">Type</h3>
    <div class="pi-data-value">Townie</div>
  </div>
</aside>`

func TestCharacterExtras(t *testing.T) {
	out := Parse(characterPage)

	// inline markup around the text is stripped
	require.Equal(t, "Spring 12", out.Metadata["birthday"])
	require.Equal(t, "Starlet Town", out.Metadata["residence"])
	require.Equal(t, "Townie", out.Type)
}

func TestParseToleratesGarbage(t *testing.T) {
	require.Equal(t, Parsed{}, Parse(""))
	require.Equal(t, Parsed{}, Parse("<p>no infobox here</p>"))

	out := Parse(`<aside class="portable-infobox"><div class="pi-item"></div></aside>`)
	require.Empty(t, out.ImageURL)
	require.Empty(t, out.Seasons)
	require.Nil(t, out.BasePrice)
}
