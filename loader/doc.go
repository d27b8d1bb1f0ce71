// This file is part of ledcylinder.
//
// ledcylinder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ledcylinder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ledcylinder.  If not, see <https://www.gnu.org/licenses/>.

// Package loader creates pages from content files.
//
// Supported content:
//
//	.png .jpg .jpeg .gif .bmp	a static page
//	.ani				an animation
//	.aseprite			ignored. these are the source files of animations
//	.zip				every page in the root of the archive
//
// An animation file is a text file with one frame per line. Each line names
// an image file and optionally gives the time in seconds for which that frame
// is shown. The default duration is 0.1 seconds. Text after a # is a comment.
// Image files are found in a directory named after the animation file, without
// the extension. For example, the file content/wave.ani:
//
//	# a simple wave
//	wave0.png 0.2
//	wave1.png
//	wave2.png 0.05
//
// uses content/wave/wave0.png, content/wave/wave1.png and so on.
//
// All images must be the same size as the display. If the brightest value in
// any of the images of a page is greater than the loader's brightness limit,
// every value in the page's images is scaled down so that the brightest value
// equals the limit.
//
// A zip archive is treated like a directory. Animation frames are found in
// subdirectories of the archive as they would be on disk.
//
// Files are read through an afero.Fs so that content can come from anywhere,
// including memory.
package loader
